package helper

import (
	"fmt"

	"github.com/spf13/viper"
)

var CfgFile string

// CurrentConfig returns a string setting of the currently selected remote.
func CurrentConfig(key string) string {
	remote := viper.GetString("remote")
	return viper.GetString(fmt.Sprintf("%s.%s", remote, key))
}

// CurrentConfigBool returns a boolean setting of the currently selected remote.
func CurrentConfigBool(key string) bool {
	remote := viper.GetString("remote")
	return viper.GetBool(fmt.Sprintf("%s.%s", remote, key))
}

// CurrentConfigInt returns an integer setting of the currently selected remote.
func CurrentConfigInt(key string) int {
	remote := viper.GetString("remote")
	return viper.GetInt(fmt.Sprintf("%s.%s", remote, key))
}
