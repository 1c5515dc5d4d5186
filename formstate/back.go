package formstate

import "FIC_Backend/models"

// Fixed table sizes on page 2 of the card.
const (
	PaintMicronRows  = 10
	TUpPrimerRows    = 3
	PartsChangeRows  = 12
	RepairRoutingLen = 15
)

// PaintMicronRow is one row of the paint microns grid: 17 paint-surface
// locations plus the confirming associate.
type PaintMicronRow struct {
	FillLid           string `json:"fillLid"`
	AllBody           string `json:"allBody"`
	Hood              string `json:"hood"`
	Roof              string `json:"roof"`
	TrunkTailgate     string `json:"trunkTailgate"`
	FenderLeft        string `json:"fenderLeft"`
	FenderRight       string `json:"fenderRight"`
	RearPanelLeft     string `json:"rearPanelLeft"`
	RearPanelRight    string `json:"rearPanelRight"`
	FrontDoor1        string `json:"frontDoor1"`
	FrontDoor2        string `json:"frontDoor2"`
	RearDoor3         string `json:"rearDoor3"`
	RearDoor4         string `json:"rearDoor4"`
	PillarLeft        string `json:"pillarLeft"`
	PillarRight       string `json:"pillarRight"`
	LocationMain      string `json:"locationMain"`
	LocationFinal     string `json:"locationFinal"`
	RepairConfirmedBy string `json:"repairConfirmedBy"`
}

type PartsChangeRow struct {
	PartName    string `json:"partName"`
	RemoveX     bool   `json:"removeX"`
	RemovedBy   string `json:"removedBy"`
	InstalledBy string `json:"installedBy"`
	InspectedBy string `json:"inspectedBy"`
}

type HeaderChecks struct {
	LSWaterleak        bool `json:"lsWaterleak"`
	RSWaterleak        bool `json:"rsWaterleak"`
	QICSFinalShip      bool `json:"qicsFinalShip"`
	RepairConfirmation bool `json:"repairConfirmation"`
}

// BackFormState holds every editable field of page 2 for one open form
// instance. All tables are dense and fixed-size; zero values are the empty
// defaults the blank card starts with.
type BackFormState struct {
	VIN           string                            `json:"vin"`
	Associate     string                            `json:"associate"`
	HeaderChecks  HeaderChecks                      `json:"headerChecks"`
	PaintMicrons  [PaintMicronRows]PaintMicronRow   `json:"paintMicrons"`
	TUpPrimers    [TUpPrimerRows]PaintMicronRow     `json:"tUpPrimers"`
	PartsChanges  [PartsChangeRows]PartsChangeRow   `json:"partsChanges"`
	RepairRouting [RepairRoutingLen]string          `json:"repairRouting"`
}

func NewBackFormState(vin string) *BackFormState {
	return &BackFormState{VIN: vin}
}

// PaintMicronUpdate is a partial update for one paint microns row. Pointer
// fields carry presence: nil leaves the cell untouched, non-nil overwrites
// it even with an empty string.
type PaintMicronUpdate struct {
	Row               int     `json:"row"`
	FillLid           *string `json:"fillLid,omitempty"`
	AllBody           *string `json:"allBody,omitempty"`
	Hood              *string `json:"hood,omitempty"`
	Roof              *string `json:"roof,omitempty"`
	TrunkTailgate     *string `json:"trunkTailgate,omitempty"`
	FenderLeft        *string `json:"fenderLeft,omitempty"`
	FenderRight       *string `json:"fenderRight,omitempty"`
	RearPanelLeft     *string `json:"rearPanelLeft,omitempty"`
	RearPanelRight    *string `json:"rearPanelRight,omitempty"`
	FrontDoor1        *string `json:"frontDoor1,omitempty"`
	FrontDoor2        *string `json:"frontDoor2,omitempty"`
	RearDoor3         *string `json:"rearDoor3,omitempty"`
	RearDoor4         *string `json:"rearDoor4,omitempty"`
	PillarLeft        *string `json:"pillarLeft,omitempty"`
	PillarRight       *string `json:"pillarRight,omitempty"`
	LocationMain      *string `json:"locationMain,omitempty"`
	LocationFinal     *string `json:"locationFinal,omitempty"`
	RepairConfirmedBy *string `json:"repairConfirmedBy,omitempty"`
}

// PartsChangeUpdate is a partial update for one parts on/off row. RemoveX is
// a pointer so an explicit false is distinguishable from "not provided".
type PartsChangeUpdate struct {
	Row         int     `json:"row"`
	PartName    *string `json:"partName,omitempty"`
	RemoveX     *bool   `json:"removeX,omitempty"`
	RemovedBy   *string `json:"removedBy,omitempty"`
	InstalledBy *string `json:"installedBy,omitempty"`
	InspectedBy *string `json:"inspectedBy,omitempty"`
}

// BackFormPayload is the wire shape of a back-form submission (and of the
// `data` column of a pending update, with VIN/Section lifted from the row).
type BackFormPayload struct {
	VIN          string              `json:"vin"`
	Section      string              `json:"section"`
	PaintMicrons []PaintMicronUpdate `json:"paintMicrons,omitempty"`
	PartsChanges []PartsChangeUpdate `json:"partsChanges,omitempty"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func (u PaintMicronUpdate) applyTo(r *PaintMicronRow) {
	setString(&r.FillLid, u.FillLid)
	setString(&r.AllBody, u.AllBody)
	setString(&r.Hood, u.Hood)
	setString(&r.Roof, u.Roof)
	setString(&r.TrunkTailgate, u.TrunkTailgate)
	setString(&r.FenderLeft, u.FenderLeft)
	setString(&r.FenderRight, u.FenderRight)
	setString(&r.RearPanelLeft, u.RearPanelLeft)
	setString(&r.RearPanelRight, u.RearPanelRight)
	setString(&r.FrontDoor1, u.FrontDoor1)
	setString(&r.FrontDoor2, u.FrontDoor2)
	setString(&r.RearDoor3, u.RearDoor3)
	setString(&r.RearDoor4, u.RearDoor4)
	setString(&r.PillarLeft, u.PillarLeft)
	setString(&r.PillarRight, u.PillarRight)
	setString(&r.LocationMain, u.LocationMain)
	setString(&r.LocationFinal, u.LocationFinal)
	setString(&r.RepairConfirmedBy, u.RepairConfirmedBy)
}

func (u PartsChangeUpdate) applyTo(r *PartsChangeRow) {
	setString(&r.PartName, u.PartName)
	setBool(&r.RemoveX, u.RemoveX)
	setString(&r.RemovedBy, u.RemovedBy)
	setString(&r.InstalledBy, u.InstalledBy)
	setString(&r.InspectedBy, u.InspectedBy)
}

// Apply merges a validated payload into the state. Which tables are touched
// follows the payload's section; an empty section (user edits) applies
// whatever arrays are present. Out-of-range rows are dropped silently — the
// endpoint already rejected them, but the merge defends on its own.
func (s *BackFormState) Apply(p BackFormPayload) ApplyResult {
	var res ApplyResult
	if p.VIN != "" && p.VIN != s.VIN {
		s.VIN = p.VIN
		res.VINChanged = true
	}
	if p.Section == "" || models.SectionCoversPaint(p.Section) {
		for _, u := range p.PaintMicrons {
			if u.Row < 0 || u.Row >= PaintMicronRows {
				continue
			}
			u.applyTo(&s.PaintMicrons[u.Row])
			res.PaintRows++
		}
	}
	if p.Section == "" || models.SectionCoversParts(p.Section) {
		for _, u := range p.PartsChanges {
			if u.Row < 0 || u.Row >= PartsChangeRows {
				continue
			}
			u.applyTo(&s.PartsChanges[u.Row])
			res.PartsRows++
		}
	}
	return res
}

// RepairRoutingUpdate overwrites one routing box.
type RepairRoutingUpdate struct {
	Box   int    `json:"box"`
	Value string `json:"value"`
}

// BackFormEdit is a direct user edit to page 2, bypassing the pending-update
// queue. It can reach the fields remote payloads cannot (primers, routing,
// header checks, associate).
type BackFormEdit struct {
	VIN           string                `json:"vin,omitempty"`
	Associate     *string               `json:"associate,omitempty"`
	HeaderChecks  *HeaderChecksEdit     `json:"headerChecks,omitempty"`
	PaintMicrons  []PaintMicronUpdate   `json:"paintMicrons,omitempty"`
	TUpPrimers    []PaintMicronUpdate   `json:"tUpPrimers,omitempty"`
	PartsChanges  []PartsChangeUpdate   `json:"partsChanges,omitempty"`
	RepairRouting []RepairRoutingUpdate `json:"repairRouting,omitempty"`
}

type HeaderChecksEdit struct {
	LSWaterleak        *bool `json:"lsWaterleak,omitempty"`
	RSWaterleak        *bool `json:"rsWaterleak,omitempty"`
	QICSFinalShip      *bool `json:"qicsFinalShip,omitempty"`
	RepairConfirmation *bool `json:"repairConfirmation,omitempty"`
}

func (s *BackFormState) ApplyEdit(e BackFormEdit) ApplyResult {
	res := s.Apply(BackFormPayload{
		VIN:          e.VIN,
		PaintMicrons: e.PaintMicrons,
		PartsChanges: e.PartsChanges,
	})
	if e.Associate != nil {
		s.Associate = *e.Associate
		res.HeaderFields++
	}
	if e.HeaderChecks != nil {
		for _, f := range []struct {
			dst *bool
			src *bool
		}{
			{&s.HeaderChecks.LSWaterleak, e.HeaderChecks.LSWaterleak},
			{&s.HeaderChecks.RSWaterleak, e.HeaderChecks.RSWaterleak},
			{&s.HeaderChecks.QICSFinalShip, e.HeaderChecks.QICSFinalShip},
			{&s.HeaderChecks.RepairConfirmation, e.HeaderChecks.RepairConfirmation},
		} {
			if f.src != nil {
				*f.dst = *f.src
				res.HeaderFields++
			}
		}
	}
	for _, u := range e.TUpPrimers {
		if u.Row < 0 || u.Row >= TUpPrimerRows {
			continue
		}
		u.applyTo(&s.TUpPrimers[u.Row])
		res.PaintRows++
	}
	for _, u := range e.RepairRouting {
		if u.Box < 0 || u.Box >= RepairRoutingLen {
			continue
		}
		s.RepairRouting[u.Box] = u.Value
		res.HeaderFields++
	}
	return res
}
