package formstate

// InspectionRow is the four editable cells every checklist item carries.
type InspectionRow struct {
	WIUAssoc    string `json:"wiuAssoc"`
	Rej         bool   `json:"rej"`
	RepairedBy  string `json:"repairedBy"`
	InspectedBy string `json:"inspectedBy"`
}

type FrontHeader struct {
	Model         string `json:"model"`
	PaintShift    string `json:"paintShift"`
	AssemblyDate  string `json:"assemblyDate"`
	KeyTagNumber  string `json:"keyTagNumber"`
	EngineNumber  string `json:"engineNumber"`
	InspectedDate string `json:"inspectedDate"`
	TechInfo      string `json:"techInfo"`
	ManualEntry   string `json:"manualEntry"`
	ProductLot    string `json:"productLot"`
	KDLot         string `json:"kdLot"`
}

type StationChecks struct {
	VQDOn      bool `json:"vqdOn"`
	Chassis    bool `json:"chassis"`
	Dyno       bool `json:"dyno"`
	NCAT       bool `json:"ncat"`
	MDT        bool `json:"mdt"`
	MAS        bool `json:"mas"`
	Track      bool `json:"track"`
	Function   bool `json:"function"`
	PreShip    bool `json:"preShip"`
	Shuttle60A bool `json:"shuttle60a"`
	Scan60A    bool `json:"scan60a"`
}

type FlexInspection struct {
	Rough bool `json:"rough"`
	Short bool `json:"short"`
	Long  bool `json:"long"`
}

// FrontFormState holds every editable field of page 1. Items is dense: one
// row per distinct catalog item, pre-populated with empty defaults.
type FrontFormState struct {
	VIN            string                   `json:"vin"`
	Header         FrontHeader              `json:"header"`
	StationChecks  StationChecks            `json:"stationChecks"`
	FlexInspection FlexInspection           `json:"flexInspection"`
	DTCStored      InspectionRow            `json:"dtcStored"`
	Items          map[string]InspectionRow `json:"items"`
}

func NewFrontFormState(vin string) *FrontFormState {
	items := make(map[string]InspectionRow)
	for _, name := range AllFrontItems() {
		items[name] = InspectionRow{}
	}
	return &FrontFormState{VIN: vin, Items: items}
}

// InspectionItemUpdate is a partial update for one item's row, with pointer
// presence semantics.
type InspectionItemUpdate struct {
	WIUAssoc    *string `json:"wiuAssoc,omitempty"`
	Rej         *bool   `json:"rej,omitempty"`
	RepairedBy  *string `json:"repairedBy,omitempty"`
	InspectedBy *string `json:"inspectedBy,omitempty"`
}

func (u InspectionItemUpdate) applyTo(r *InspectionRow) {
	setString(&r.WIUAssoc, u.WIUAssoc)
	setBool(&r.Rej, u.Rej)
	setString(&r.RepairedBy, u.RepairedBy)
	setString(&r.InspectedBy, u.InspectedBy)
}

// TrunkTailgatePayload is the wire shape of a trunk/tailgate submission:
// the VIN plus up to four named partial updates.
type TrunkTailgatePayload struct {
	VIN                      string                `json:"vin"`
	TailgateFunction         *InspectionItemUpdate `json:"tailgateFunction,omitempty"`
	SeatbeltFunction         *InspectionItemUpdate `json:"seatbeltFunction,omitempty"`
	SeatHeadrest             *InspectionItemUpdate `json:"seatHeadrest,omitempty"`
	VINLabelPrintedCondition *InspectionItemUpdate `json:"vinLabelPrintedCondition,omitempty"`
}

func (p TrunkTailgatePayload) fields() map[string]*InspectionItemUpdate {
	return map[string]*InspectionItemUpdate{
		"tailgateFunction":         p.TailgateFunction,
		"seatbeltFunction":         p.SeatbeltFunction,
		"seatHeadrest":             p.SeatHeadrest,
		"vinLabelPrintedCondition": p.VINLabelPrintedCondition,
	}
}

// Apply merges a trunk/tailgate payload into the state via the static
// API-field-to-item lookup.
func (s *FrontFormState) Apply(p TrunkTailgatePayload) ApplyResult {
	var res ApplyResult
	if p.VIN != "" && p.VIN != s.VIN {
		s.VIN = p.VIN
		res.VINChanged = true
	}
	for apiField, u := range p.fields() {
		if u == nil {
			continue
		}
		item, ok := TrunkTailgateAPIFields[apiField]
		if !ok {
			continue
		}
		row := s.Items[item]
		u.applyTo(&row)
		s.Items[item] = row
		res.Items++
	}
	return res
}

// FrontHeaderEdit is a partial update for the page 1 header block, with
// pointer presence semantics.
type FrontHeaderEdit struct {
	Model         *string `json:"model,omitempty"`
	PaintShift    *string `json:"paintShift,omitempty"`
	AssemblyDate  *string `json:"assemblyDate,omitempty"`
	KeyTagNumber  *string `json:"keyTagNumber,omitempty"`
	EngineNumber  *string `json:"engineNumber,omitempty"`
	InspectedDate *string `json:"inspectedDate,omitempty"`
	TechInfo      *string `json:"techInfo,omitempty"`
	ManualEntry   *string `json:"manualEntry,omitempty"`
	ProductLot    *string `json:"productLot,omitempty"`
	KDLot         *string `json:"kdLot,omitempty"`
}

func (u FrontHeaderEdit) applyTo(h *FrontHeader) int {
	n := 0
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&h.Model, u.Model},
		{&h.PaintShift, u.PaintShift},
		{&h.AssemblyDate, u.AssemblyDate},
		{&h.KeyTagNumber, u.KeyTagNumber},
		{&h.EngineNumber, u.EngineNumber},
		{&h.InspectedDate, u.InspectedDate},
		{&h.TechInfo, u.TechInfo},
		{&h.ManualEntry, u.ManualEntry},
		{&h.ProductLot, u.ProductLot},
		{&h.KDLot, u.KDLot},
	} {
		if f.src != nil {
			*f.dst = *f.src
			n++
		}
	}
	return n
}

// StationChecksEdit is a partial update for the station sign-off boxes.
type StationChecksEdit struct {
	VQDOn      *bool `json:"vqdOn,omitempty"`
	Chassis    *bool `json:"chassis,omitempty"`
	Dyno       *bool `json:"dyno,omitempty"`
	NCAT       *bool `json:"ncat,omitempty"`
	MDT        *bool `json:"mdt,omitempty"`
	MAS        *bool `json:"mas,omitempty"`
	Track      *bool `json:"track,omitempty"`
	Function   *bool `json:"function,omitempty"`
	PreShip    *bool `json:"preShip,omitempty"`
	Shuttle60A *bool `json:"shuttle60a,omitempty"`
	Scan60A    *bool `json:"scan60a,omitempty"`
}

func (u StationChecksEdit) applyTo(c *StationChecks) int {
	n := 0
	for _, f := range []struct {
		dst *bool
		src *bool
	}{
		{&c.VQDOn, u.VQDOn},
		{&c.Chassis, u.Chassis},
		{&c.Dyno, u.Dyno},
		{&c.NCAT, u.NCAT},
		{&c.MDT, u.MDT},
		{&c.MAS, u.MAS},
		{&c.Track, u.Track},
		{&c.Function, u.Function},
		{&c.PreShip, u.PreShip},
		{&c.Shuttle60A, u.Shuttle60A},
		{&c.Scan60A, u.Scan60A},
	} {
		if f.src != nil {
			*f.dst = *f.src
			n++
		}
	}
	return n
}

// FlexInspectionEdit is a partial update for the flex inspection boxes.
type FlexInspectionEdit struct {
	Rough *bool `json:"rough,omitempty"`
	Short *bool `json:"short,omitempty"`
	Long  *bool `json:"long,omitempty"`
}

func (u FlexInspectionEdit) applyTo(fi *FlexInspection) int {
	n := 0
	for _, f := range []struct {
		dst *bool
		src *bool
	}{
		{&fi.Rough, u.Rough},
		{&fi.Short, u.Short},
		{&fi.Long, u.Long},
	} {
		if f.src != nil {
			*f.dst = *f.src
			n++
		}
	}
	return n
}

// FrontFormEdit is a direct user edit to page 1: any catalog item by name,
// plus the header and station fields remote payloads cannot reach. Unknown
// item names are dropped silently.
type FrontFormEdit struct {
	VIN            string                          `json:"vin,omitempty"`
	Header         *FrontHeaderEdit                `json:"header,omitempty"`
	StationChecks  *StationChecksEdit              `json:"stationChecks,omitempty"`
	FlexInspection *FlexInspectionEdit             `json:"flexInspection,omitempty"`
	Items          map[string]InspectionItemUpdate `json:"items,omitempty"`
	DTCStored      *InspectionItemUpdate           `json:"dtcStored,omitempty"`
}

func (s *FrontFormState) ApplyEdit(e FrontFormEdit) ApplyResult {
	var res ApplyResult
	if e.VIN != "" && e.VIN != s.VIN {
		s.VIN = e.VIN
		res.VINChanged = true
	}
	if e.Header != nil {
		res.HeaderFields += e.Header.applyTo(&s.Header)
	}
	if e.StationChecks != nil {
		res.HeaderFields += e.StationChecks.applyTo(&s.StationChecks)
	}
	if e.FlexInspection != nil {
		res.HeaderFields += e.FlexInspection.applyTo(&s.FlexInspection)
	}
	for name, u := range e.Items {
		row, ok := s.Items[name]
		if !ok {
			continue
		}
		u.applyTo(&row)
		s.Items[name] = row
		res.Items++
	}
	if e.DTCStored != nil {
		e.DTCStored.applyTo(&s.DTCStored)
		res.Items++
	}
	return res
}
