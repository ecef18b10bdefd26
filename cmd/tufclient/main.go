// Command tufclient is a minimal operator CLI over package updater: it
// refreshes a local trusted metadata cache against a remote repository,
// resolves target paths through the delegation graph, and downloads
// target content, mirroring the role cmd/notary plays for docker-notary.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDirName     = ".tufclient/"
	defaultConfigName = "config"
	defaultConfigExt  = "yaml"
)

var (
	verbose        bool
	trustDir       string
	configFile     string
	serverOverride string
	configPath     string
	mainViper      = viper.New()
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tufclient",
		Short: "tufclient maintains a local trusted copy of a TUF repository's metadata.",
		Long:  "tufclient implements the client-side trusted metadata workflow of The Update Framework: root rotation, timestamp/snapshot/targets verification, delegation resolution, and bounded target download.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			parseConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&trustDir, "trustdir", "d", "", "directory where local metadata and target caches are kept")
	rootCmd.PersistentFlags().StringVarP(&configFile, "configFile", "c", "", "path to the configuration file to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRefreshCommand())
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newDownloadCommand())

	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}

// parseConfig resolves the trust directory and loads the YAML
// configuration file, the same two-step layout docker-notary's
// cmd/notary main.go uses: a trust directory defaulting to a dotfile
// under the user's home, and a config file defaulting to a sibling
// "config.yaml" inside it.
func parseConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
		log.SetOutput(os.Stderr)
	}

	if trustDir == "" {
		homeDir, err := homedir.Dir()
		if err != nil {
			fatalf("cannot get current user home directory: %v", err)
		}
		trustDir = filepath.Join(homeDir, strings.TrimSuffix(configDirName, "/"))
		log.Debugf("no trust directory provided, using default: %s", trustDir)
	} else {
		log.Debugf("trust directory provided: %s", trustDir)
	}

	configName := defaultConfigName
	configExt := defaultConfigExt
	if configFile != "" {
		configExt = strings.TrimPrefix(filepath.Ext(configFile), ".")
		configName = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		configPath = filepath.Dir(configFile)
	} else {
		configPath = trustDir
	}

	mainViper.SetConfigName(configName)
	mainViper.SetConfigType(configExt)
	mainViper.AddConfigPath(configPath)

	if err := mainViper.ReadInConfig(); err != nil {
		log.Debugf("configuration file not found, using built-in defaults: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "* fatal: "+format+"\n", args...)
	os.Exit(1)
}
