package content

// Genres is the catalogue offered by the project creation wizard.
var Genres = []string{
	"Action", "Adventure", "Alternate History", "Coming-of-Age",
	"Contemporary Romance", "Cosmic Horror", "Cozy Fantasy", "Cozy Mystery",
	"Crime", "Cyberpunk", "Dark Fantasy", "Detective Fiction", "Drama",
	"Dystopian", "Epic Fantasy", "Fairy Tale", "Family Saga", "Fantasy",
	"Folk Horror", "Gothic Horror", "Heist", "Historical Fiction",
	"Historical Romance", "Horror", "Legal Thriller", "LitRPG",
	"Literary Fiction", "Low Fantasy", "Magical Realism", "Medical Drama",
	"Military Sci-Fi", "Mystery", "Mythic Fiction", "Noir", "Paranormal Romance",
	"Police Procedural", "Political Thriller", "Post-Apocalyptic",
	"Psychological Thriller", "Romance", "Romantic Comedy", "Romantasy",
	"Satire", "Science Fantasy", "Science Fiction", "Slice of Life",
	"Space Opera", "Speculative Fiction", "Steampunk", "Superhero",
	"Supernatural Horror", "Survival", "Sword and Sorcery", "Techno-Thriller",
	"Thriller", "Time Travel", "Tragedy", "True Crime", "Urban Fantasy",
	"Western", "Whodunit", "Young Adult",
}

// WordOfDay is a vocabulary entry surfaced on the dashboard.
type WordOfDay struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Usage      string `json:"usage"`
}

var motivations = []string{
	"Write the book you wish existed.",
	"First drafts are allowed to be terrible. They only have to exist.",
	"A page a day is a book a year.",
	"Your characters already know the ending. Keep up with them.",
	"Revision is where stories are made. Drafting is where they are found.",
	"The blank page is not your enemy. The closed notebook is.",
	"Trust the scene you are in before you worry about the one after it.",
}

var tips = []string{
	"Enter scenes late and leave them early.",
	"Give every character in a scene something they want.",
	"Cut the first paragraph of your draft chapter and see if it still stands.",
	"Replace one adverb per page with a stronger verb.",
	"Read your dialogue out loud. Your ear catches what your eye forgives.",
	"When a scene drags, raise what it costs the protagonist to stay in it.",
	"Describe a place through what your viewpoint character would notice first.",
}

var prompts = []string{
	"The lighthouse had been dark for forty years. Tonight it was lit.",
	"She recognized the handwriting on the package. It was her own.",
	"The map was accurate in every detail except one: the city on it did not exist.",
	"Every door in the house was locked from the inside.",
	"He had rehearsed the confession for weeks. She spoke first.",
	"The last train of the night stopped at a station that was not on the line.",
	"Nobody in the village would say the bridge's name out loud.",
}

var facts = []string{
	"Mary Shelley wrote Frankenstein at eighteen, on a dare during a rainy summer.",
	"Tolkien wrote much of The Lord of the Rings in pencil during air-raid watches.",
	"Agatha Christie plotted novels while eating apples in the bathtub.",
	"Ray Bradbury wrote Fahrenheit 451 on a rented typewriter, a dime per half hour.",
	"Victor Hugo wrote to his publisher '?' about Les Miserables. The reply was '!'.",
	"Maya Angelou wrote in rented hotel rooms with the art removed from the walls.",
	"Jack Kerouac typed On the Road on a single 120-foot scroll of paper.",
}

var words = []WordOfDay{
	{Word: "petrichor", Definition: "The earthy scent after rain on dry ground.", Usage: "Anchors a scene in sensory memory."},
	{Word: "liminal", Definition: "Occupying a threshold between two states.", Usage: "Names the mood of doorways, dusks, and departures."},
	{Word: "susurrus", Definition: "A soft whispering or rustling sound.", Usage: "Lets a forest or a crowd speak without words."},
	{Word: "denouement", Definition: "The final unravelling after a story's climax.", Usage: "The space where consequences settle."},
	{Word: "gossamer", Definition: "Something delicate, light, and insubstantial.", Usage: "Softens an image without naming fragility."},
	{Word: "verisimilitude", Definition: "The appearance of being true or real.", Usage: "The texture of detail that makes invention believable."},
	{Word: "crepuscular", Definition: "Of or resembling twilight.", Usage: "A precise register for half-light scenes."},
}
