package client

import (
	"errors"
	"time"

	"github.com/jmazzahacks/loki-reader-core/helper"
)

// CurrentClient builds a Client from the currently selected remote in the
// CLI configuration.
func CurrentClient(verbose bool) (*Client, error) {
	baseURL := helper.CurrentConfig("url")
	if baseURL == "" {
		return nil, errors.New("Loki URL is not defined, maybe try `loki-reader configure remote`")
	}

	config := &Config{
		BaseURL:            baseURL,
		Username:           helper.CurrentConfig("username"),
		Password:           helper.CurrentConfig("password"),
		OrgID:              helper.CurrentConfig("org_id"),
		CACert:             helper.CurrentConfig("ca_cert"),
		InsecureSkipVerify: helper.CurrentConfigBool("insecure_skip_verify"),
	}
	if timeout := helper.CurrentConfigInt("timeout"); timeout > 0 {
		config.Timeout = time.Duration(timeout) * time.Second
	}

	c, err := New(config)
	if err != nil {
		return nil, err
	}
	c.SetDebug(verbose)

	return c, nil
}
