package classifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brandlens/brandlens/internal/models"
)

// parseResponse validates the pipe-delimited sextuple returned by the
// AI dependency:
//
//	isOfficial|isMatrix|isUgc|brandOrNone|confidence|rationale
//
// Exactly 6 fields and exactly one true boolean are required. Any
// violation returns the degraded UGC default with zero confidence.
func parseResponse(text string) models.ClassificationResult {
	parts := strings.Split(text, "|")
	if len(parts) != 6 {
		return degradedResult(fmt.Sprintf("malformed response (%d fields)", len(parts)))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	isOfficial := strings.EqualFold(parts[0], "true")
	isMatrix := strings.EqualFold(parts[1], "true")
	isUGC := strings.EqualFold(parts[2], "true")

	trueCount := 0
	for _, b := range []bool{isOfficial, isMatrix, isUGC} {
		if b {
			trueCount++
		}
	}
	if trueCount != 1 {
		return degradedResult(fmt.Sprintf("exclusivity violated (%d categories)", trueCount))
	}

	brandName := parts[3]
	if strings.EqualFold(brandName, "none") {
		brandName = ""
	}

	confidence, err := strconv.ParseFloat(parts[4], 64)
	if err != nil || confidence < 0 || confidence > 1 {
		confidence = 0
	}

	var accountType models.AccountType
	switch {
	case isOfficial:
		accountType = models.AccountOfficial
	case isMatrix:
		accountType = models.AccountMatrix
	default:
		accountType = models.AccountUGC
	}

	return models.ClassificationResult{
		AccountType: accountType,
		BrandName:   brandName,
		Confidence:  confidence,
		Rationale:   parts[5],
	}
}

// degradedResult is the defined outcome for untrusted AI responses.
func degradedResult(reason string) models.ClassificationResult {
	return models.ClassificationResult{
		AccountType: models.AccountUGC,
		BrandName:   "",
		Confidence:  0,
		Rationale:   "Analysis failed - defaulted to UGC creator: " + reason,
	}
}
