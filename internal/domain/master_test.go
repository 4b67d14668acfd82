package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMasterRow_Category(t *testing.T) {
	tests := []struct {
		name string
		cdsp int64
		cssp int64
		want Category
	}{
		{"positive net is DSP", 500, 100, CategoryDSP},
		{"negative net is SSP", 100, 500, CategorySSP},
		{"exactly zero counts as DSP", 300, 300, CategoryDSP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := MasterRow{
				CollectedDSP: decimal.NewFromInt(tt.cdsp),
				CollectedSSP: decimal.NewFromInt(tt.cssp),
			}
			assert.Equal(t, tt.want, row.Category())
		})
	}
}

func TestMasterFromRecord_FailSoftCoercion(t *testing.T) {
	rec := Record{
		"Month":        "Apr-2024",
		"Partner Name": "acme",
		"DSP $ (BC)":   "$1,000.50",
		"SSP $ (BC)":   "n/a", // unparseable reads as zero
		"C DSP $":      "",
		// C SSP $ missing entirely
	}

	row := MasterFromRecord(rec)

	assert.Equal(t, "Apr-2024", row.Month.String())
	assert.Equal(t, "acme", row.PartnerName)
	assert.Equal(t, "1000.50", row.DSPBilled.StringFixed(2))
	assert.True(t, row.SSPBilled.IsZero())
	assert.True(t, row.CollectedDSP.IsZero())
	assert.True(t, row.CollectedSSP.IsZero())
	assert.True(t, row.NetBilled().Equal(row.DSPBilled))
}

func TestMasterRow_Nets(t *testing.T) {
	row := MasterRow{
		DSPBilled:    decimal.NewFromInt(1000),
		SSPBilled:    decimal.NewFromInt(400),
		CollectedDSP: decimal.NewFromInt(800),
		CollectedSSP: decimal.NewFromInt(300),
	}

	assert.True(t, row.NetBilled().Equal(decimal.NewFromInt(600)))
	assert.True(t, row.NetCollected().Equal(decimal.NewFromInt(500)))
}
