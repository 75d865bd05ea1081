package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// similarThreshold is the relative difference under which two values read as
// similar.
const similarThreshold = 0.001

// ComparisonUnavailable is returned when no comparison sentence can be made.
const ComparisonUnavailable = "Comparison data is unavailable for the selected systems."

// Comparand is a system the hybrid is compared against.
type Comparand struct {
	Label   string
	Metrics Metrics
}

// ComparisonText describes how the hybrid differs from each comparand on
// every scorecard metric. Pairs with a missing value or a zero comparator are
// skipped. Percentages round half away from zero.
func ComparisonText(hybrid Metrics, others []Comparand) string {
	var sentences []string
	for _, metric := range ScorecardMetrics {
		h, ok := hybrid.Get(metric).Float()
		if !ok {
			continue
		}
		for _, other := range others {
			o, ok := other.Metrics.Get(metric).Float()
			if !ok || o == 0 {
				continue
			}
			sentences = append(sentences, compareSentence(metric, h, o, other.Label))
		}
	}

	if len(sentences) == 0 {
		return ComparisonUnavailable
	}
	return strings.Join(sentences, " ")
}

func compareSentence(metric Metric, hybrid, other float64, label string) string {
	diff := hybrid - other
	if math.Abs(diff) < similarThreshold*math.Abs(other) {
		return fmt.Sprintf("Hybrid has similar %s to %s.", metric.phrase(), label)
	}

	pct := decimal.NewFromFloat(math.Abs(diff) / math.Abs(other) * 100).Round(0)
	direction := "more"
	if hybrid < other {
		direction = "less"
	}
	return fmt.Sprintf("Hybrid has %s%% %s %s than %s.", pct.String(), direction, metric.phrase(), label)
}
