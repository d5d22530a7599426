package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

type LanguageDetector interface {
	// Detect returns the ISO 639-1 code of the text, or an empty string.
	Detect(text string) string
}

type linguaDetector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds the language models on first use.
func NewLinguaDetector() LanguageDetector {
	return &linguaDetector{}
}

func (v *linguaDetector) Detect(text string) string {
	v.once.Do(func() {
		v.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Chinese,
				lingua.Japanese,
				lingua.Korean,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Russian,
			).
			WithLowAccuracyMode().
			Build()
	})

	if lang, ok := v.detector.DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return ""
}
