package content

// language detection
const (
	languageSampleSize  = 5000
	languagePlaceholder = "Hello"
)

// log previews
const (
	DisplayTruncateLength = 50
)

// text processing constants
const (
	avgCharsPerWord   = 5.0
	avgWordsPerMinute = 150.0
)
