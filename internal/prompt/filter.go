package prompt

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBiometricDescriptor marks assembled text containing forbidden
// biometric-descriptor language. Assembly fails outright; the text is
// never silently stripped. Callers retry with regenerated scene and
// garment wording.
var ErrBiometricDescriptor = errors.New("biometric descriptor language in prompt")

// The filter is a denylist of descriptive biometric claims: language
// that states facial/body structure, proportion, attractiveness, or
// demographics as an aesthetic target. Neutral structural words
// ("face", "gaze", "posture") and photographic vocabulary ("depth of
// field", "candid") always pass.
var biometricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bjaw\s?line\s+(is|looks|should be|must be)\b`),
	regexp.MustCompile(`(?i)\bcheek\s?bones?\s+(is|are|look|should)\b`),
	regexp.MustCompile(`(?i)\bskin\s+tone\s+(is|should|must)\b`),
	regexp.MustCompile(`(?i)\b(eyes|lips|nose|chin|forehead|eyebrows)\s+(is|are|should be|must be|look)\s+\w*(big|small|large|narrow|wide|full|thin|straight|almond|defined|sharp|soft)\w*`),
	regexp.MustCompile(`(?i)\bface\s+(is|looks|appears|should be)\s+(more\s+)?(symmetric|symmetrical|balanced|attractive|beautiful|refined|slimmer|thinner)`),
	regexp.MustCompile(`(?i)\b(young|youthful|old|elderly|beautiful|attractive|pretty|handsome|gorgeous|stunning)\s+(woman|man|girl|boy|lady|gentleman|female|male|person|model)\b`),
	regexp.MustCompile(`(?i)\b(slim|slender|curvy|athletic|petite|tall|short)\s+(body|figure|build|frame)\b`),
	regexp.MustCompile(`(?i)\b(caucasian|asian|african|european|latino|latina|hispanic|middle[- ]eastern)\s+(woman|man|girl|boy|person|model|features?|appearance|look)\b`),
	regexp.MustCompile(`(?i)\b(aged?|looks?)\s+(about|around|approximately)\s+\d{1,2}\b`),
	regexp.MustCompile(`(?i)\bmake\s+(her|him|them|the\s+(face|person|skin|eyes|lips|nose))\s+\w*(prettier|younger|smoother|slimmer|more attractive|more beautiful|more symmetric)`),
}

// FilterBiometricLanguage scans assembled prompt text for forbidden
// biometric-descriptor patterns.
func FilterBiometricLanguage(text string) error {
	for _, pattern := range biometricPatterns {
		if match := pattern.FindString(text); match != "" {
			return fmt.Errorf("forbidden phrase %q: %w", match, ErrBiometricDescriptor)
		}
	}
	return nil
}
