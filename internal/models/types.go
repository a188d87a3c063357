package models

// RecordedAtLayout is the timestamp format the server uses when it stamps a
// wearable reading itself.
const RecordedAtLayout = "2006-01-02 15:04:05"

type Workout struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
}

type Diet struct {
	ID       int64  `json:"id"`
	Meal     string `json:"meal"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}

// Wearable is a single reading pushed by a fitness band or watch.
type Wearable struct {
	ID         int64  `json:"id"`
	HeartRate  int    `json:"heart_rate"`
	Steps      int    `json:"steps"`
	RecordedAt string `json:"recorded_at"`
}
