package classify

import "time"

// Exported for testing
var PredictExpiryDate = predictExpiryDate

func (x *Classifier) ParseClassificationResponse(response string, items []Item, now time.Time) ([]Classification, *BusinessAnalysis, error) {
	return x.parseClassificationResponse(response, items, now)
}

func (x *Classifier) BuildClassificationPrompt(merchantName string, items []Item, now time.Time) string {
	return x.buildClassificationPrompt(merchantName, items, now)
}
