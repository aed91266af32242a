package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/itho-discovery/internal/discovery"
	"github.com/nerrad567/itho-discovery/internal/infrastructure/config"
	"github.com/nerrad567/itho-discovery/internal/infrastructure/logging"
	"github.com/nerrad567/itho-discovery/internal/infrastructure/mqtt"
	"github.com/nerrad567/itho-discovery/internal/pipeline"
)

var (
	generateVersion int
	generateOutput  string
	generatePublish bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <file.par>",
	Short: "Generate sensor discovery descriptors from a parameter export",
	Long: `generate runs the full conversion pipeline on one .par export and emits
the sensor discovery descriptors for a single firmware version as YAML.

By default the highest discovered version is used and the document is
written to stdout (logs go to stderr). With --publish the descriptors are
additionally published, retained, to the hub's MQTT discovery prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateVersion, "version", 0,
		"firmware version to generate for (default: highest discovered)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "-",
		"output file for the YAML document (\"-\" for stdout)")
	generateCmd.Flags().BoolVar(&generatePublish, "publish", false,
		"publish descriptors to the MQTT discovery prefix (retained)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, args[0], log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.Error("error closing pipeline", "error", closeErr)
		}
	}()

	if err := p.Run(ctx); err != nil {
		return err
	}

	versions := p.Versions()
	if len(versions) == 0 {
		return fmt.Errorf("no firmware versions found in %s", args[0])
	}

	selected := generateVersion
	if selected == 0 {
		selected = versions[len(versions)-1]
	}
	log.Info("generating descriptors", "version", selected, "versions_available", len(versions))

	sensors, err := p.Sensors(selected)
	if err != nil {
		return err
	}

	if err := writeDescriptors(sensors, generateOutput); err != nil {
		return err
	}

	if generatePublish {
		if err := publishDescriptors(cfg, log, sensors); err != nil {
			return err
		}
	}

	log.Info("descriptors generated", "version", selected, "sensors", len(sensors))
	return nil
}

// writeDescriptors emits the YAML document to stdout or a file.
func writeDescriptors(sensors []discovery.Sensor, output string) error {
	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return discovery.EncodeYAML(w, sensors)
}

// publishDescriptors publishes every descriptor, retained, to the hub's
// discovery prefix. Each sensor gets its own config topic derived from its
// object id.
func publishDescriptors(cfg *config.Config, log *logging.Logger, sensors []discovery.Sensor) error {
	if !cfg.MQTT.Enabled {
		return fmt.Errorf("--publish requires mqtt.enabled in the configuration")
	}

	client, err := mqtt.Connect(cfg.MQTT, cfg.Device.AvailabilityTopic())
	if err != nil {
		return err
	}
	client.SetLogger(log)
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Error("error closing MQTT client", "error", closeErr)
		}
	}()

	topics := mqtt.Topics{DiscoveryPrefix: cfg.Device.DiscoveryPrefix}
	for _, sensor := range sensors {
		payload, err := json.Marshal(sensor)
		if err != nil {
			return fmt.Errorf("encoding descriptor %s: %w", sensor.UniqueID, err)
		}

		topic := topics.SensorConfig(cfg.Device.ID, sensor.ObjectID())
		if err := client.PublishRetained(topic, payload); err != nil {
			return fmt.Errorf("publishing descriptor %s: %w", sensor.UniqueID, err)
		}
		log.Debug("published descriptor", "topic", topic)
	}

	log.Info("descriptors published", "count", len(sensors), "prefix", cfg.Device.DiscoveryPrefix)
	return nil
}

// setup loads configuration and initialises the logger. With no --config
// flag the built-in defaults are used.
func setup() (*config.Config, *logging.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	log := logging.New(cfg.Logging, version)
	log.Info("starting itho-discovery", "version", version, "commit", commit)
	return cfg, log, nil
}
