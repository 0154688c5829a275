package constants

// LevelNames are indexed by level-1.
var LevelNames = []string{
	"Calm Apprentice", "Mind Warrior", "Free Soul", "Discipline Master", "Inner Citadel",
}

// IntentMessages rotate on the goals view, one per day.
var IntentMessages = []string{
	"Small wins build unshakable habits.",
	"Progress > Perfection.",
	"You don’t have to do it all. Just don’t stop.",
	"Discipline is today's work for tomorrow's freedom.",
	"Consistency is the weapon of the focused mind.",
}

var MotivationalMessages = []string{
	"Discipline is freedom.",
	"The urge will pass. You stay.",
	"Small steps lead to great distances.",
	"You are in control.",
	"Reclaim your mind.",
}

// WisdomStream is a named category of generated reflective content.
type WisdomStream struct {
	Title       string
	Description string
}

var WisdomStreams = []WisdomStream{
	{Title: "Mind Discipline", Description: "Strengthen your focus and self-control."},
	{Title: "Courage & Purpose", Description: "Find your why and act with bravery."},
	{Title: "Peace & Patience", Description: "Cultivate calm in a chaotic world."},
	{Title: "Motivation Surge", Description: "Get a boost of energy and inspiration."},
}

type Quote struct {
	Text   string
	Author string
}

// Quotes are shown when a focus session completes.
var Quotes = []Quote{
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
	{Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit.", Author: "Will Durant"},
	{Text: "The chains of habit are too weak to be felt until they are too strong to be broken.", Author: "Samuel Johnson"},
	{Text: "Discipline is the bridge between goals and accomplishment.", Author: "Jim Rohn"},
	{Text: "The successful warrior is the average man, with laser-like focus.", Author: "Bruce Lee"},
	{Text: "It is better to conquer yourself than to win a thousand battles.", Author: "Buddha"},
	{Text: "Concentrate all your thoughts upon the work at hand. The sun's rays do not burn until brought to a focus.", Author: "Alexander Graham Bell"},
	{Text: "He who has a why to live can bear almost any how.", Author: "Friedrich Nietzsche"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "The only way out is through.", Author: "Robert Frost"},
	{Text: "The first and greatest victory is to conquer yourself.", Author: "Plato"},
	{Text: "You do not rise to the level of your goals. You fall to the level of your systems.", Author: "James Clear"},
	{Text: "Every action you take is a vote for the type of person you wish to become.", Author: "James Clear"},
	{Text: "We first make our habits, and then our habits make us.", Author: "John Dryden"},
	{Text: "Motivation is what gets you started. Habit is what keeps you going.", Author: "Jim Rohn"},
	{Text: "The man who moves a mountain begins by carrying away small stones.", Author: "Confucius"},
	{Text: "Waste no more time arguing about what a good man should be. Be one.", Author: "Marcus Aurelius"},
	{Text: "First say to yourself what you would be; and then do what you have to do.", Author: "Epictetus"},
	{Text: "Success is the sum of small efforts, repeated day in and day out.", Author: "Robert Collier"},
	{Text: "Don't judge each day by the harvest you reap but by the seeds that you plant.", Author: "Robert Louis Stevenson"},
	{Text: "The journey of a thousand miles begins with a single step.", Author: "Lao Tzu"},
	{Text: "We suffer more often in imagination than in reality.", Author: "Seneca"},
	{Text: "No great thing is created suddenly.", Author: "Epictetus"},
	{Text: "Man conquers the world by conquering himself.", Author: "Zeno of Citium"},
	{Text: "Be tolerant with others and strict with yourself.", Author: "Marcus Aurelius"},
	{Text: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
}
