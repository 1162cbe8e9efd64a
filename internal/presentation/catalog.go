package presentation

// ActivitySuggestion is a static catalog entry
type ActivitySuggestion struct {
	Emoji       string `json:"emoji"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// activitiesPerCategory is the fixed length of every activity set
const activitiesPerCategory = 4

var activities = map[Category][activitiesPerCategory]ActivitySuggestion{
	Sunny: {
		{"🚴", "Cycling", "Take a bike ride around the neighbourhood"},
		{"🧺", "Picnic", "Pack some snacks and head to the park"},
		{"🏖️", "Beach Day", "Soak up the sun by the water"},
		{"🥾", "Hiking", "Explore a nearby trail"},
	},
	Rainy: {
		{"📚", "Reading", "Curl up with a good book"},
		{"🎬", "Movie Marathon", "Catch up on your watchlist"},
		{"🍪", "Baking", "Try a new cookie recipe"},
		{"🧩", "Puzzles", "Work on a jigsaw or a crossword"},
	},
	Cloudy: {
		{"📸", "Photography", "Soft light makes for great photos"},
		{"🏛️", "Museum Visit", "Discover a local exhibition"},
		{"☕", "Café Hopping", "Try a coffee shop you have never visited"},
		{"🚶", "City Walk", "Stroll without squinting at the sun"},
	},
	Cold: {
		{"⛸️", "Ice Skating", "Glide around the local rink"},
		{"🍲", "Soup Cooking", "Warm up with a homemade soup"},
		{"🎲", "Board Games", "Gather friends for a game night"},
		{"♨️", "Hot Springs", "Relax in a warm spa"},
	},
}

var funFacts = []string{
	"A single bolt of lightning is about five times hotter than the surface of the sun.",
	"Raindrops are not tear-shaped; small ones are nearly spherical.",
	"The highest temperature ever recorded on Earth was 56.7°C in Death Valley.",
	"Snowflakes can take up to an hour to fall from the cloud to the ground.",
	"A cumulus cloud can weigh more than a million pounds.",
	"The coldest temperature ever recorded was -89.2°C at Vostok Station, Antarctica.",
	"Mawsynram in India receives over 11 metres of rain a year.",
	"Wind does not make a sound until it blows against an object.",
	"Hailstones can fall at speeds of over 160 km/h.",
	"Fog is simply a cloud that touches the ground.",
}

var jokes = []string{
	"What does a cloud wear under its raincoat? Thunderwear!",
	"Why did the weather reporter bring a bar of soap? They were predicting showers.",
	"What is a tornado's favourite game? Twister!",
	"How do hurricanes see? With one eye.",
	"What did one raindrop say to the other? Two's company, three's a cloud.",
	"Why do suns never go to college? Because they already have a million degrees.",
	"What falls but never gets hurt? Rain!",
	"What do you call a snowman in summer? A puddle.",
}
