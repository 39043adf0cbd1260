// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// RootSettingsFile is the name of the optional settings file looked for
// in the working directory when --settings isn't passed
const RootSettingsFile = "pangenome.yaml"

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those from the command line
type Config struct {
	// the external clustering executable run once per step
	ClusterTool string `mapstructure:"cluster-tool"`

	// extra arguments appended to every clustering invocation
	ClusterArgs []string `mapstructure:"cluster-args"`

	// directory with per-genome FASTA files, relative to the work dir
	FastaDir string `mapstructure:"fasta-dir"`

	// directory with per-genome gene attribute files, relative to the work dir
	AttDir string `mapstructure:"att-dir"`

	// directory that holds one working directory per step
	StepsDir string `mapstructure:"steps-dir"`

	// name of the cluster membership table each step's run produces
	MatchFile string `mapstructure:"match-file"`

	// name of the cluster representative FASTA each step's run produces
	CentroidFile string `mapstructure:"centroid-file"`

	// name of the frameshift report a step's run may produce
	FrameshiftFile string `mapstructure:"frameshift-file"`

	// whether to log per-step progress to stderr
	Verbose bool `mapstructure:"verbose"`
}

// New returns a Config populated by Viper: defaults, then the settings
// file (if one exists), then any bound command line flags
func New() *Config {
	viper.SetDefault("cluster-tool", "panoct")
	viper.SetDefault("fasta-dir", "fasta")
	viper.SetDefault("att-dir", "att")
	viper.SetDefault("steps-dir", "steps")
	viper.SetDefault("match-file", "matchtable.txt")
	viper.SetDefault("centroid-file", "centroids.fasta")
	viper.SetDefault("frameshift-file", "frameshifts.txt")

	// the default settings file is optional, a user-passed one is not
	if file := viper.GetString("settings"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) || file != RootSettingsFile {
				log.Fatalf("failed to read settings file %s: %v", file, err)
			}
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("failed to decode settings: %v", err)
	}

	return c
}
