package cmd

import (
	"github.com/jsphweid/eartrainer/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "eartrainer",
	Short: "Ear training drills",
	Long:  `Ear training drills: hear a cadence, name the notes that follow by scale degree.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./eartrainer.yaml)")
}

func loadConfig() (*config.Config, *logrus.Logger) {
	c, err := config.Load(configFile)
	cobra.CheckErr(err)
	return c, config.NewLogger(c.Log)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
