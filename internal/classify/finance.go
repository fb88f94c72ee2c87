// Package classify decides whether an article is finance-related.
package classify

import (
	"strings"

	"github.com/ppiankov/finbrief/internal/textnorm"
)

// FinanceTerms is the default keyword set covering markets, currencies, rates,
// funds and earnings. Terms are lower-case.
var FinanceTerms = []string{
	// markets
	"주식", "증시", "코스피", "코스닥", "나스닥", "다우", "s&p", "지수", "주가", "시총", "공매도", "거래량", "상승", "하락",
	// fx
	"환율", "원달러", "달러", "엔화", "위안", "외환", "fx",
	// rates
	"금리", "기준금리", "국채", "채권", "fomc", "cpi", "물가", "인플레이션",
	// products
	"etf", "etn", "펀드", "리츠", "reit", "배당",
	// earnings
	"실적", "반도체", "d램", "dram",
}

// Classifier matches text against a fixed keyword set
type Classifier struct {
	terms []string
}

// NewClassifier creates a classifier; an empty term list uses FinanceTerms
func NewClassifier(terms []string) *Classifier {
	if len(terms) == 0 {
		terms = FinanceTerms
	}

	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Classifier{terms: lowered}
}

// Match reports whether any term occurs in the normalized title and
// description, case-insensitively
func (c *Classifier) Match(title, description string) bool {
	text := strings.ToLower(textnorm.Normalize(title) + " " + textnorm.Normalize(description))
	for _, term := range c.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

var defaultClassifier = NewClassifier(nil)

// IsFinance classifies with the default finance keyword set
func IsFinance(title, description string) bool {
	return defaultClassifier.Match(title, description)
}
