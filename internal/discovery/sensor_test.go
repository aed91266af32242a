package discovery

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/itho-discovery/internal/catalog"
)

var testDevice = Device{
	ID:                  "itho_432432",
	StateTopic:          "itho_wtw/ithostatus",
	AvailabilityTopic:   "itho_wtw/lwt",
	PayloadAvailable:    "online",
	PayloadNotAvailable: "offline",
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		raw           string
		wantCanonical string
		wantDisplay   string
	}{
		{"M3/h", "m3/h", "m³/h"},
		{"m3/h", "m3/h", "m³/h"},
		{"m³/h", "m3/h", "m³/h"},
		{"uur", "h", "h"},
		{"-", "", ""},
		{"", "", ""},
		{"°C", "°C", "°C"},
		{"Pa", "Pa", "Pa"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeUnit(tt.raw)
			if got.Canonical != tt.wantCanonical || got.Display != tt.wantDisplay {
				t.Errorf("NormalizeUnit(%q) = {%q %q}, want {%q %q}",
					tt.raw, got.Canonical, got.Display, tt.wantCanonical, tt.wantDisplay)
			}

			// Normalization is idempotent on canonical spellings.
			again := NormalizeUnit(got.Canonical)
			if again.Canonical != got.Canonical {
				t.Errorf("NormalizeUnit(%q).Canonical = %q, not idempotent",
					got.Canonical, again.Canonical)
			}
		})
	}
}

func TestSensorFlowUnit(t *testing.T) {
	sy := NewSynthesizer(testDevice, DefaultRegistry())

	sensor, err := sy.Sensor(catalog.Datalabel{
		LabelGB:   "Supply flow",
		TooltipGB: "Supply fan flow",
		UnitGB:    "M3/h",
	})
	if err != nil {
		t.Fatalf("Sensor() error: %v", err)
	}

	if sensor.UnitOfMeasurement != "m³/h" {
		t.Errorf("UnitOfMeasurement = %q, want superscript spelling", sensor.UnitOfMeasurement)
	}
	if sensor.DeviceClass != "volume_flow_rate" {
		t.Errorf("DeviceClass = %q, want volume_flow_rate", sensor.DeviceClass)
	}
	if sensor.StateClass != "measurement" {
		t.Errorf("StateClass = %q, want measurement", sensor.StateClass)
	}

	// The template key carries the raw unit: the telemetry payload is keyed
	// by the legacy vocabulary, not the normalized one.
	want := `{{ value_json["Supply fan flow (M3/h)"] }}`
	if sensor.ValueTemplate != want {
		t.Errorf("ValueTemplate = %q, want %q", sensor.ValueTemplate, want)
	}

	if sensor.UniqueID != "itho_432432_Supply flow" {
		t.Errorf("UniqueID = %q", sensor.UniqueID)
	}
	if len(sensor.Availability) != 1 || sensor.Availability[0].Topic != "itho_wtw/lwt" {
		t.Errorf("Availability = %v", sensor.Availability)
	}
}

func TestSensorDashUnit(t *testing.T) {
	sy := NewSynthesizer(testDevice, DefaultRegistry())

	sensor, err := sy.Sensor(catalog.Datalabel{
		LabelGB:   "Status",
		TooltipGB: "Status",
		UnitGB:    "-",
	})
	if err != nil {
		t.Fatalf("Sensor() error: %v", err)
	}

	if sensor.UnitOfMeasurement != "" {
		t.Errorf("UnitOfMeasurement = %q, want empty", sensor.UnitOfMeasurement)
	}
	if sensor.DeviceClass != "" || sensor.StateClass != "" {
		t.Errorf("classes = %q/%q, want none", sensor.DeviceClass, sensor.StateClass)
	}
	if want := `{{ value_json["Status (-)"] }}`; sensor.ValueTemplate != want {
		t.Errorf("ValueTemplate = %q, want %q", sensor.ValueTemplate, want)
	}
}

func TestSensorDutchHours(t *testing.T) {
	sy := NewSynthesizer(testDevice, DefaultRegistry())

	sensor, err := sy.Sensor(catalog.Datalabel{
		LabelGB:   "Filter hours",
		TooltipGB: "Hours since filter change",
		UnitGB:    "uur",
	})
	if err != nil {
		t.Fatalf("Sensor() error: %v", err)
	}
	if sensor.UnitOfMeasurement != "h" {
		t.Errorf("UnitOfMeasurement = %q, want h", sensor.UnitOfMeasurement)
	}
	if sensor.DeviceClass != "duration" {
		t.Errorf("DeviceClass = %q, want duration", sensor.DeviceClass)
	}
	if !strings.Contains(sensor.ValueTemplate, "(uur)") {
		t.Errorf("ValueTemplate = %q, want raw (uur) key", sensor.ValueTemplate)
	}
}

func TestSensorUnknownUnitPassesThrough(t *testing.T) {
	sy := NewSynthesizer(testDevice, DefaultRegistry())

	sensor, err := sy.Sensor(catalog.Datalabel{
		LabelGB:   "Fan speed",
		TooltipGB: "Fan speed",
		UnitGB:    "rpm",
	})
	if err != nil {
		t.Fatalf("Sensor() error: %v", err)
	}
	if sensor.UnitOfMeasurement != "rpm" {
		t.Errorf("UnitOfMeasurement = %q, want rpm", sensor.UnitOfMeasurement)
	}
	if sensor.DeviceClass != "" {
		t.Errorf("DeviceClass = %q, want none", sensor.DeviceClass)
	}
}

func TestSensorAmbiguousClass(t *testing.T) {
	registry := NewRegistry(
		[]DeviceClass{ClassPower, ClassEnergy},
		map[DeviceClass][]string{
			ClassPower:  {"blip"},
			ClassEnergy: {"blip"},
		},
		nil,
	)
	sy := NewSynthesizer(testDevice, registry)

	_, err := sy.Sensor(catalog.Datalabel{
		LabelGB:   "Odd reading",
		TooltipGB: "Odd reading",
		UnitGB:    "blip",
	})
	if !errors.Is(err, ErrAmbiguousClass) {
		t.Fatalf("Sensor() error = %v, want ErrAmbiguousClass", err)
	}
	if !strings.Contains(err.Error(), "Odd reading") {
		t.Errorf("error %q should name the datalabel", err)
	}
}

func TestEnergyStateClassOrder(t *testing.T) {
	if got := DefaultRegistry().StateClassFor(ClassEnergy); got != StateTotal {
		t.Errorf("StateClassFor(energy) = %q, want total", got)
	}
}

func TestObjectID(t *testing.T) {
	tests := []struct {
		uniqueID string
		want     string
	}{
		{"itho_432432_Supply flow", "itho_432432_supply_flow"},
		{"itho_432432_CO2 (ppm)", "itho_432432_co2_ppm"},
		{"ABC", "abc"},
	}
	for _, tt := range tests {
		s := Sensor{UniqueID: tt.uniqueID}
		if got := s.ObjectID(); got != tt.want {
			t.Errorf("ObjectID(%q) = %q, want %q", tt.uniqueID, got, tt.want)
		}
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	sy := NewSynthesizer(testDevice, DefaultRegistry())

	labels := []catalog.Datalabel{
		{LabelGB: "Supply flow", TooltipGB: "Supply fan flow", UnitGB: "M3/h"},
		{LabelGB: "Supply temp", TooltipGB: "Supply air temperature", UnitGB: "°C"},
		{LabelGB: "Status", TooltipGB: "Status", UnitGB: "-"},
	}
	sensors, err := sy.Sensors(labels)
	if err != nil {
		t.Fatalf("Sensors() error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, sensors); err != nil {
		t.Fatalf("EncodeYAML() error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "m³/h") {
		t.Error("output should carry the superscript glyph verbatim")
	}
	if !strings.Contains(out, "°C") {
		t.Error("output should carry the degree glyph verbatim")
	}

	// Key order follows descriptor field order.
	if strings.Index(out, "name:") > strings.Index(out, "unique_id:") ||
		strings.Index(out, "unique_id:") > strings.Index(out, "state_topic:") ||
		strings.Index(out, "state_topic:") > strings.Index(out, "value_template:") {
		t.Error("output keys are not in descriptor field order")
	}

	var decoded []Sensor
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if !reflect.DeepEqual(decoded, sensors) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, sensors)
	}
}
