package dbapi

import (
	"strconv"
	"strings"
)

// fallbackCharacters is the embedded dataset substituted when the remote API
// is unreachable. It mirrors the remote record shape and stays in memory,
// unmodified, for the lifetime of the process.
var fallbackCharacters = []Character{
	{
		ID:     1,
		Name:   "Goku",
		Ki:     "60.000.000",
		MaxKi:  "90 Septillion",
		Race:   "Saiyan",
		Gender: "Male",
		Description: "A Saiyan raised on Earth and the planet's most devoted protector. " +
			"Sent away as a baby before the destruction of Planet Vegeta, he grew up " +
			"training under Master Roshi and has pushed past every known power ceiling since.",
		Image:       "https://dragonball-api.com/characters/goku_normal.webp",
		Affiliation: "Z Fighter",
	},
	{
		ID:     2,
		Name:   "Vegeta",
		Ki:     "54.000.000",
		MaxKi:  "19.84 Septillion",
		Race:   "Saiyan",
		Gender: "Male",
		Description: "The prince of the fallen Saiyan race. Once an invader of Earth, his " +
			"rivalry with Goku turned him into one of its fiercest defenders, though his " +
			"pride never softened.",
		Image:       "https://dragonball-api.com/characters/vegeta_normal.webp",
		Affiliation: "Z Fighter",
	},
	{
		ID:     3,
		Name:   "Piccolo",
		Ki:     "2.000.000",
		MaxKi:  "500.000.000",
		Race:   "Namekian",
		Gender: "Male",
		Description: "A Namekian warrior born from the darker half of Kami. After years as " +
			"Goku's enemy he became Gohan's mentor and a steady pillar of the Z Fighters.",
		Image:       "https://dragonball-api.com/characters/picolo_normal.webp",
		Affiliation: "Z Fighter",
	},
	{
		ID:     4,
		Name:   "Bulma",
		Ki:     "0",
		MaxKi:  "0",
		Race:   "Human",
		Gender: "Female",
		Description: "Heiress of Capsule Corporation and the brilliant engineer behind the " +
			"Dragon Radar. She has accompanied the hunt for the Dragon Balls since the " +
			"very first journey.",
		Image:       "https://dragonball-api.com/characters/bulma.webp",
		Affiliation: "Z Fighter",
	},
	{
		ID:     5,
		Name:   "Freezer",
		Ki:     "530.000",
		MaxKi:  "52.71 Septillion",
		Race:   "Frieza Race",
		Gender: "Male",
		Description: "The galactic emperor who destroyed Planet Vegeta. Famous for hiding " +
			"overwhelming power behind a string of transformations.",
		Image:       "https://dragonball-api.com/characters/Freezer.webp",
		Affiliation: "Army of Frieza",
	},
	{
		ID:     6,
		Name:   "Zarbon",
		Ki:     "20.000",
		MaxKi:  "30.000",
		Race:   "Frieza Race",
		Gender: "Male",
		Description: "Frieza's elegant right hand, valued as much for his tactical advice " +
			"as for the monstrous form he keeps hidden.",
		Image:       "https://dragonball-api.com/characters/zarbon.webp",
		Affiliation: "Army of Frieza",
	},
}

var fallbackPlanets = []Planet{
	{
		ID:          1,
		Name:        "Earth",
		IsDestroyed: false,
		Description: "Home of the Z Fighters and target of nearly every villain in the galaxy. " +
			"Destroyed by Majin Buu and later restored by the Dragon Balls.",
		Image: "https://dragonball-api.com/planetas/Tierra_Dragon_Ball.webp",
	},
	{
		ID:          2,
		Name:        "Namek",
		IsDestroyed: true,
		Description: "Birthplace of the Namekians and of the original Dragon Balls, " +
			"destroyed during the battle between Goku and Frieza.",
		Image: "https://dragonball-api.com/planetas/Planeta_Namek.webp",
	},
	{
		ID:          3,
		Name:        "Vegeta",
		IsDestroyed: true,
		Description: "The Saiyan homeworld, wiped out by Frieza along with nearly all of " +
			"its people.",
		Image: "https://dragonball-api.com/planetas/Planeta_Vegeta.webp",
	},
	{
		ID:          4,
		Name:        "Kaiō del Norte",
		IsDestroyed: true,
		Description: "King Kai's tiny training world at the end of Snake Way, sacrificed " +
			"during the fight against Cell.",
		Image: "https://dragonball-api.com/planetas/Planeta_Kai.webp",
	},
}

// fallbackCharacterPage slices the embedded dataset into a synthetic envelope
// using a client-side page window.
func fallbackCharacterPage(page, pageSize int) CharacterPage {
	total := len(fallbackCharacters)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := append([]Character(nil), fallbackCharacters[start:end]...)
	totalPages := (total + pageSize - 1) / pageSize
	// Keep currentPage inside [1, totalPages] even for windows past the
	// dataset, matching the remote envelope contract.
	current := page
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}
	return CharacterPage{
		Items: items,
		Meta: Meta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: pageSize,
			TotalPages:   totalPages,
			CurrentPage:  current,
		},
	}
}

// fallbackCharacterByID looks up a record by numeric identifier. The incoming
// id is coerced to an integer so "1" and 1 address the same record.
func fallbackCharacterByID(id string) (Character, bool) {
	numeric, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return Character{}, false
	}
	for _, record := range fallbackCharacters {
		if record.ID == numeric {
			return record, true
		}
	}
	return Character{}, false
}

func fallbackPlanetPage() PlanetPage {
	items := append([]Planet(nil), fallbackPlanets...)
	return PlanetPage{
		Items: items,
		Meta: Meta{
			TotalItems:   len(items),
			ItemCount:    len(items),
			ItemsPerPage: len(items),
			TotalPages:   1,
			CurrentPage:  1,
		},
	}
}
