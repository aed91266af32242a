package discovery

import (
	"fmt"
	"strings"

	"github.com/nerrad567/itho-discovery/internal/catalog"
)

// Device is the fixed identity every synthesized descriptor refers to:
// one physical HVAC unit bridged onto the hub's MQTT namespace.
type Device struct {
	ID                  string
	StateTopic          string
	AvailabilityTopic   string
	PayloadAvailable    string
	PayloadNotAvailable string
}

// Availability is one availability topic entry in a descriptor.
type Availability struct {
	Topic string `yaml:"topic" json:"topic"`
}

// Sensor is one hub sensor discovery descriptor. Field order is the emitted
// key order; optional fields are omitted rather than emitted empty.
type Sensor struct {
	Name              string `yaml:"name" json:"name"`
	UniqueID          string `yaml:"unique_id" json:"unique_id"`
	StateTopic        string `yaml:"state_topic" json:"state_topic"`
	ValueTemplate     string `yaml:"value_template" json:"value_template"`
	UnitOfMeasurement string `yaml:"unit_of_measurement,omitempty" json:"unit_of_measurement,omitempty"`
	DeviceClass       string `yaml:"device_class,omitempty" json:"device_class,omitempty"`
	StateClass        string `yaml:"state_class,omitempty" json:"state_class,omitempty"`

	Availability        []Availability `yaml:"availability" json:"availability"`
	PayloadAvailable    string         `yaml:"payload_available" json:"payload_available"`
	PayloadNotAvailable string         `yaml:"payload_not_available" json:"payload_not_available"`
}

// ObjectID returns a topic-safe identifier derived from the unique id:
// lowercased, with every non-alphanumeric run collapsed to one underscore.
func (s Sensor) ObjectID() string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s.UniqueID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// Synthesizer turns datalabel records into sensor discovery descriptors.
// It is a pure function of (datalabel, device identity, registry); nothing
// is shared or mutated across invocations.
type Synthesizer struct {
	device   Device
	registry *Registry
}

// NewSynthesizer creates a Synthesizer for the given device identity and
// reference registry.
func NewSynthesizer(device Device, registry *Registry) *Synthesizer {
	return &Synthesizer{device: device, registry: registry}
}

// Sensor synthesizes one descriptor from a datalabel's GB-language fields.
//
// The unit is normalized for device-class lookup and display, but the value
// template is keyed by the RAW label+unit pair: the telemetry payload on the
// state topic uses the legacy vocabulary verbatim, so the extraction key
// must too.
//
// Parameters:
//   - dl: Source datalabel record
//
// Returns:
//   - Sensor: Populated descriptor
//   - error: ErrAmbiguousClass when the unit maps to multiple device classes
func (sy *Synthesizer) Sensor(dl catalog.Datalabel) (Sensor, error) {
	rawUnit := dl.UnitGB
	unit := NormalizeUnit(rawUnit)

	var deviceClass DeviceClass
	if unit.Canonical != "" {
		classes := sy.registry.ClassesForUnit(unit.Canonical)
		switch len(classes) {
		case 0:
			// No class; a plain sensor.
		case 1:
			deviceClass = classes[0]
		default:
			return Sensor{}, fmt.Errorf("%w: unit %q of datalabel %q matches %v",
				ErrAmbiguousClass, unit.Canonical, dl.LabelGB, classes)
		}
	}

	var stateClass StateClass
	if deviceClass != "" {
		stateClass = sy.registry.StateClassFor(deviceClass)
	}

	return Sensor{
		Name:              dl.LabelGB,
		UniqueID:          sy.device.ID + "_" + dl.LabelGB,
		StateTopic:        sy.device.StateTopic,
		ValueTemplate:     fmt.Sprintf(`{{ value_json["%s (%s)"] }}`, dl.TooltipGB, rawUnit),
		UnitOfMeasurement: unit.Display,
		DeviceClass:       string(deviceClass),
		StateClass:        string(stateClass),

		Availability:        []Availability{{Topic: sy.device.AvailabilityTopic}},
		PayloadAvailable:    sy.device.PayloadAvailable,
		PayloadNotAvailable: sy.device.PayloadNotAvailable,
	}, nil
}

// Sensors synthesizes descriptors for a whole datalabel sequence,
// preserving order. The first ambiguous classification aborts the batch.
func (sy *Synthesizer) Sensors(datalabels []catalog.Datalabel) ([]Sensor, error) {
	sensors := make([]Sensor, 0, len(datalabels))
	for _, dl := range datalabels {
		sensor, err := sy.Sensor(dl)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, sensor)
	}
	return sensors, nil
}
