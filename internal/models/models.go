package models

// Phrase is one generated phrase as written in json output
type Phrase struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ClassCount describes one word class of a loaded dictionary
type ClassCount struct {
	Class string `json:"class"`
	Words int    `json:"words"`
}

type Result struct {
	Generated int `json:"generated"`
	Stats     struct {
		Reloads     int `json:"reloads"`
		TimeElapsed int `json:"timeElapsedMs"`
	} `json:"stats"`
}
