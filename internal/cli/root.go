package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "finbrief",
	Short: "finbrief - Korean financial news and market briefing",
	Long: `finbrief collects the latest Korean financial news, enriches articles with
their full body text, and combines them with community posts and the latest
exchange and interest rates into a daily briefing dataset.

Stored articles and posts live in a local embedded database; the schedule
command keeps it fresh.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("finbrief %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.finbrief/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

// credentialEnv maps config keys to the conventional provider variables,
// checked after the FINBRIEF_ prefixed name
var credentialEnv = map[string]string{
	"search.client_id":     "NAVER_CLIENT_ID",
	"search.client_secret": "NAVER_CLIENT_SECRET",
	"series.api_key":       "ECOS_API_KEY",
	"llm.api_key":          "OPENAI_API_KEY",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".finbrief"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// FINBRIEF_SEARCH_PER_QUERY overrides search.per_query when the key is set in the file
	viper.SetEnvPrefix("FINBRIEF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, env := range credentialEnv {
		_ = viper.BindEnv(key, "FINBRIEF_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
