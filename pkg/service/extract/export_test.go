package extract

// Exported for testing
var (
	ParseItemsResponse    = parseItemsResponse
	BuildExtractionPrompt = buildExtractionPrompt
)
