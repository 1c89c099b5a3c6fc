package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   storage.Counters
		want Results
	}{
		{"no votes", storage.Counters{}, Results{}},
		{"three to one", storage.Counters{Yes: 3, No: 1, Total: 4}, Results{Yes: 3, No: 1, Total: 4, YesPercent: 75, NoPercent: 25}},
		{"all yes", storage.Counters{Yes: 5, Total: 5}, Results{Yes: 5, Total: 5, YesPercent: 100}},
		{"thirds round independently", storage.Counters{Yes: 1, No: 2, Total: 3}, Results{Yes: 1, No: 2, Total: 3, YesPercent: 33, NoPercent: 67}},
		{"half rounds away from zero", storage.Counters{Yes: 1, No: 7, Total: 8}, Results{Yes: 1, No: 7, Total: 8, YesPercent: 13, NoPercent: 88}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.in))
		})
	}
}
