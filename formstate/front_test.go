package formstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrontFormStateDense(t *testing.T) {
	s := NewFrontFormState("VIN1")
	// Every catalog item gets an empty row up front.
	for _, name := range AllFrontItems() {
		row, ok := s.Items[name]
		require.True(t, ok, "missing item %q", name)
		assert.Equal(t, InspectionRow{}, row)
	}
	// Items shared across stations collapse to a single row.
	assert.Len(t, s.Items, len(AllFrontItems()))
}

func TestFrontApplyMapsAPIFields(t *testing.T) {
	s := NewFrontFormState("VIN1")
	res := s.Apply(TrunkTailgatePayload{
		TailgateFunction: &InspectionItemUpdate{Rej: boolPtr(true), InspectedBy: strPtr("Sarah")},
		SeatHeadrest:     &InspectionItemUpdate{WIUAssoc: strPtr("W-1042")},
	})

	assert.Equal(t, 2, res.Items)
	assert.True(t, s.Items["Tailgate Function"].Rej)
	assert.Equal(t, "Sarah", s.Items["Tailgate Function"].InspectedBy)
	assert.Equal(t, "W-1042", s.Items["Seat Headrest"].WIUAssoc)
	assert.Equal(t, InspectionRow{}, s.Items["Seatbelt Function"], "absent fields untouched")
}

func TestFrontApplyPresenceSemantics(t *testing.T) {
	s := NewFrontFormState("")
	s.Items["Seatbelt Function"] = InspectionRow{Rej: true, RepairedBy: "Mike"}

	s.Apply(TrunkTailgatePayload{
		SeatbeltFunction: &InspectionItemUpdate{Rej: boolPtr(false)},
	})
	row := s.Items["Seatbelt Function"]
	assert.False(t, row.Rej, "explicit false overwrites")
	assert.Equal(t, "Mike", row.RepairedBy, "absent sub-field keeps existing value")
}

func TestFrontApplyIdempotent(t *testing.T) {
	payload := TrunkTailgatePayload{
		VIN:                      "5J8YD9H43TL000680",
		VINLabelPrintedCondition: &InspectionItemUpdate{InspectedBy: strPtr("Sarah")},
	}
	once := NewFrontFormState("")
	once.Apply(payload)
	twice := NewFrontFormState("")
	twice.Apply(payload)
	twice.Apply(payload)
	require.Equal(t, *once, *twice)
}

func TestFrontEditUnknownItemDropped(t *testing.T) {
	s := NewFrontFormState("")
	res := s.ApplyEdit(FrontFormEdit{
		Items: map[string]InspectionItemUpdate{
			"No Such Item":   {Rej: boolPtr(true)},
			"Radio Function": {WIUAssoc: strPtr("W-7")},
		},
		DTCStored: &InspectionItemUpdate{Rej: boolPtr(true)},
	})
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, "W-7", s.Items["Radio Function"].WIUAssoc)
	assert.True(t, s.DTCStored.Rej)
	_, exists := s.Items["No Such Item"]
	assert.False(t, exists)
}

func TestFrontEditHeaderAndStationFields(t *testing.T) {
	s := NewFrontFormState("")
	res := s.ApplyEdit(FrontFormEdit{
		Header: &FrontHeaderEdit{
			Model:        strPtr("MDX"),
			KeyTagNumber: strPtr("KT-0042"),
		},
		StationChecks:  &StationChecksEdit{VQDOn: boolPtr(true), Dyno: boolPtr(true)},
		FlexInspection: &FlexInspectionEdit{Rough: boolPtr(true)},
	})

	assert.Equal(t, 5, res.HeaderFields)
	assert.False(t, res.Empty())
	assert.Equal(t, "MDX", s.Header.Model)
	assert.Equal(t, "KT-0042", s.Header.KeyTagNumber)
	assert.Equal(t, "", s.Header.EngineNumber, "absent header field untouched")
	assert.True(t, s.StationChecks.VQDOn)
	assert.True(t, s.StationChecks.Dyno)
	assert.False(t, s.StationChecks.Chassis)
	assert.True(t, s.FlexInspection.Rough)
	assert.False(t, s.FlexInspection.Short)
}

func TestFrontEditHeaderPresenceSemantics(t *testing.T) {
	s := NewFrontFormState("")
	s.Header.Model = "TLX"
	s.StationChecks.Track = true

	res := s.ApplyEdit(FrontFormEdit{
		Header:        &FrontHeaderEdit{PaintShift: strPtr("B")},
		StationChecks: &StationChecksEdit{Track: boolPtr(false)},
	})

	assert.Equal(t, 2, res.HeaderFields)
	assert.Equal(t, "TLX", s.Header.Model, "absent field keeps existing value")
	assert.Equal(t, "B", s.Header.PaintShift)
	assert.False(t, s.StationChecks.Track, "explicit false overwrites")
}

func TestTrunkTailgateAPIFieldLookup(t *testing.T) {
	assert.Equal(t, "Tailgate Function", TrunkTailgateAPIFields["tailgateFunction"])
	assert.Equal(t, "Seatbelt Function", TrunkTailgateAPIFields["seatbeltFunction"])
	assert.Equal(t, "Seat Headrest", TrunkTailgateAPIFields["seatHeadrest"])
	assert.Equal(t, "VIN Label Printed Condition", TrunkTailgateAPIFields["vinLabelPrintedCondition"])
}
