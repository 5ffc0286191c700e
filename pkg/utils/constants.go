package utils

import "strings"

/**************************************************************************************************
** HistoryCapacity is the number of past submissions kept by the search history.
**************************************************************************************************/
const HistoryCapacity = 5

/**************************************************************************************************
** Shoot naming. New shoots are named "<prefix> N" where N is the shoot count after creation.
** Shoots holding remote tag-search results are named after the searched tags.
**************************************************************************************************/
const DefaultShootNamePrefix = "Shooting"
const TagResultsNamePrefix = "Résultats tags: "

/**************************************************************************************************
** DefaultAPIURL is the base URL of the local search backend.
**************************************************************************************************/
const DefaultAPIURL = "http://localhost:8000"

/**************************************************************************************************
** Assistant texts.
**************************************************************************************************/
const AssistantGreeting = "Bonjour, comment puis-je t’aider avec tes shootings ?"
const AssistantEmptyReply = "(Réponse vide de l'assistant)"
const AssistantErrorReply = "Erreur lors de l'appel à l'assistant."
const AssistantStubReply = "Réponse factice de l'assistant (stub)."

/**************************************************************************************************
** PredefinedTags are the tags offered for selection; free tags can be added on top of them.
**************************************************************************************************/
var PredefinedTags = []string{
	"naturel",
	"posé",
	"spontané",
	"artistique",
	"studio",
	"extérieur",
	"intérieur",
	"mariage",
	"portrait-pro",
	"famille",
	"couple",
	"golden-hour",
	"noir-et-blanc",
}
var PredefinedTagsString = strings.Join(PredefinedTags, ",")

/**************************************************************************************************
** Reason messages
**************************************************************************************************/
var REASON_NOT_AN_IMAGE = "not an image"
var REASON_TOO_LARGE = "larger than the import bounds"
var REASON_UNREADABLE = "dimensions could not be read"
