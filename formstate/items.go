package formstate

// Static checklist content for page 1, one slice per inspection station.
// These are the printed item lists on the card; they never change at runtime.

var LeftInspectionItems = []string{
	"Door Check Function",
	"Child Safety Lock Function",
	"Starter Interlock",
	"Door Glass Function",
	"Steering Wheel Installed Condition",
	"Steering Link Installed Condition",
	"Radio Function",
	"Door Mirror Condition",
}

var ChassisVisualItems = []string{
	"Coolant System Leaks",
	"Abnormal Engine Noise",
	"Brake Fluid Leaks",
	"Transmission Fluid Leaks",
	"Exhaust Installed Condition",
	"Exhaust Leak",
	"Fuel Tank Installed Condition",
	"Fuel Leak",
	"Rear Damper Installed Condition",
}

var NCATItems = []string{
	"Driver Door Lock Function",
	"Meter Panel Lights Function",
	"Steering Wheel Tilt / Telescope",
	"Steering Link Installed Condition",
	"Front/Rear Toe",
	"Hood Lock Half Lock Installed Condition",
	"Fog Light Aim",
	"Headlight Aim",
	"Battery Installed Condition",
	"Fluid Leak",
	"Hood Information Label",
}

var MDTItems = []string{
	"Speedo Error",
	"Speed Alarm Function",
	"Brake Force",
	"Parking Brake Force / Function",
	"Parking Pawl Function",
	"Shift Lever Interlock Function",
}

var MASItems = []string{
	"Front and Rear Windshield Wiper Function",
	"Driver Seat Slide Lock / Recliner Lock Function",
	"Rear View Mirror Installed Condition / Function",
	"Meter Panel Illumination Function",
	"Auto Headlight Leveling",
	"Driver's Seatbelt Function",
}

var OutsideDriveItems = []string{
	"Headlight Aim",
	"Headlight Washer Function",
	"Front / Rear Windshield Washer Function",
	"Door Mirrors Function",
	"Steering Gear Box Installed Condition",
	"Turn Signal Auto Return Function",
	"Door Auto-Lock Function",
	"Transmission Function",
	"Engine / Exhaust Abnormal Noise",
	"Steering Link Installed Condition",
	"Horn Tone and Function",
	"Cruise Control Function",
	"Front and Rear Defroster Function",
	"Brake Light Function",
	"Hazard Light Function",
	"Rear Fog Light Function",
	"License Light Function",
	"Turn Light (Front and Rear) Function",
	"Daytime Running Light Function",
	"Headlight Passing Function",
	"Reverse Lights Function",
	"Rear-Vision Camera Function",
	"Master Power Door Lock Function",
}

var WaterLeakItems = []string{
	"VIN Frame Stamping Condition (on models with carpet flap access)",
}

var FunctionItems = []string{
	"VIN Label Printed Condition",
	"Tailgate Function",
	"Seatbelt Function",
	"Seat Headrest",
}

var PreShipItems = []string{"Tire Label"}

// Station groups the catalog for seeding and for clients that render the
// card section by section.
type Station struct {
	Name  string
	Items []string
}

func Stations() []Station {
	return []Station{
		{Name: "Left Inspection", Items: LeftInspectionItems},
		{Name: "Chassis Visual", Items: ChassisVisualItems},
		{Name: "NCAT", Items: NCATItems},
		{Name: "MDT", Items: MDTItems},
		{Name: "MAS", Items: MASItems},
		{Name: "Outside Drive", Items: OutsideDriveItems},
		{Name: "Water Leak", Items: WaterLeakItems},
		{Name: "Function", Items: FunctionItems},
		{Name: "Pre-Ship", Items: PreShipItems},
	}
}

// TrunkTailgateAPIFields maps the four field names of the trunk/tailgate
// payload to the checklist items they update. The mapping is 1:1 and static.
var TrunkTailgateAPIFields = map[string]string{
	"tailgateFunction":         "Tailgate Function",
	"seatbeltFunction":         "Seatbelt Function",
	"seatHeadrest":             "Seat Headrest",
	"vinLabelPrintedCondition": "VIN Label Printed Condition",
}

// AllFrontItems returns every distinct item name across all stations, in
// card order. Items repeated on multiple stations (e.g. "Steering Link
// Installed Condition") collapse to one entry, matching the single shared
// row the form keeps for them.
func AllFrontItems() []string {
	seen := make(map[string]bool)
	var out []string
	for _, st := range Stations() {
		for _, item := range st.Items {
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
