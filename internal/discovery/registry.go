package discovery

// DeviceClass identifies a hub sensor device class.
type DeviceClass string

// Device classes this system considers. A deliberate subset of the hub's
// full enumeration: classes the HVAC telemetry vocabulary can plausibly
// map onto.
const (
	ClassApparentPower  DeviceClass = "apparent_power"
	ClassCO2            DeviceClass = "carbon_dioxide"
	ClassCurrent        DeviceClass = "current"
	ClassDuration       DeviceClass = "duration"
	ClassEnergy         DeviceClass = "energy"
	ClassHumidity       DeviceClass = "humidity"
	ClassPower          DeviceClass = "power"
	ClassPressure       DeviceClass = "pressure"
	ClassTemperature    DeviceClass = "temperature"
	ClassVolumeFlowRate DeviceClass = "volume_flow_rate"
)

// StateClass identifies how the hub aggregates a sensor's history.
type StateClass string

const (
	StateMeasurement     StateClass = "measurement"
	StateTotal           StateClass = "total"
	StateTotalIncreasing StateClass = "total_increasing"
)

// Registry is the reference lookup for device-class inference: which units
// belong to which class, and which state classes a class recognizes. The
// state-class lists are ordered; derivation always picks the first entry.
type Registry struct {
	classes      []DeviceClass
	units        map[DeviceClass]map[string]bool
	stateClasses map[DeviceClass][]StateClass
}

// NewRegistry builds a registry from explicit tables. The classes slice
// fixes the iteration order used by ClassesForUnit.
func NewRegistry(classes []DeviceClass, units map[DeviceClass][]string, stateClasses map[DeviceClass][]StateClass) *Registry {
	r := &Registry{
		classes:      classes,
		units:        make(map[DeviceClass]map[string]bool, len(units)),
		stateClasses: stateClasses,
	}
	for class, list := range units {
		set := make(map[string]bool, len(list))
		for _, unit := range list {
			set[unit] = true
		}
		r.units[class] = set
	}
	return r
}

// ClassesForUnit returns every registered class whose unit set contains the
// given canonical unit, in registry order.
func (r *Registry) ClassesForUnit(unit string) []DeviceClass {
	var matches []DeviceClass
	for _, class := range r.classes {
		if r.units[class][unit] {
			matches = append(matches, class)
		}
	}
	return matches
}

// StateClassFor returns the first recognized state class for the given
// device class, or "" when the class has none registered.
func (r *Registry) StateClassFor(class DeviceClass) StateClass {
	list := r.stateClasses[class]
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// DefaultRegistry returns the registry mirroring the hub's unit and
// state-class tables for the supported device-class subset.
func DefaultRegistry() *Registry {
	classes := []DeviceClass{
		ClassApparentPower,
		ClassCO2,
		ClassCurrent,
		ClassDuration,
		ClassEnergy,
		ClassHumidity,
		ClassPower,
		ClassPressure,
		ClassTemperature,
		ClassVolumeFlowRate,
	}

	units := map[DeviceClass][]string{
		ClassApparentPower: {"VA"},
		ClassCO2:           {"ppm"},
		ClassCurrent:       {"A", "mA"},
		ClassDuration:      {"d", "h", "min", "s", "ms"},
		ClassEnergy:        {"J", "kJ", "MJ", "GJ", "Wh", "kWh", "MWh", "GWh", "cal", "kcal", "Mcal", "Gcal"},
		ClassHumidity:      {"%"},
		ClassPower:         {"mW", "W", "kW", "MW", "GW"},
		ClassPressure:      {"Pa", "kPa", "hPa", "bar", "cbar", "mbar", "mmHg", "inHg", "psi"},
		ClassTemperature:   {"°C", "°F", "K"},
		// Both the ASCII canonical spelling and the hub's superscript
		// spelling resolve here.
		ClassVolumeFlowRate: {"m3/h", "m³/h", "ft³/min", "L/min", "gal/min", "mL/s", "L/s"},
	}

	stateClasses := map[DeviceClass][]StateClass{
		ClassApparentPower:  {StateMeasurement},
		ClassCO2:            {StateMeasurement},
		ClassCurrent:        {StateMeasurement},
		ClassDuration:       {StateMeasurement, StateTotal, StateTotalIncreasing},
		ClassEnergy:         {StateTotal, StateTotalIncreasing},
		ClassHumidity:       {StateMeasurement},
		ClassPower:          {StateMeasurement},
		ClassPressure:       {StateMeasurement},
		ClassTemperature:    {StateMeasurement},
		ClassVolumeFlowRate: {StateMeasurement},
	}

	return NewRegistry(classes, units, stateClasses)
}
