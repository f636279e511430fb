// Copyright 2024 loki-reader-core contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package configure

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmazzahacks/loki-reader-core/helper"
)

type Origin struct {
	Url      string
	OrgId    string
	Username string
	Password string
	CaCert   string
	Insecure bool
	Timeout  int
}

const defaultLokiUrl = "http://localhost:3100"

func NewRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote [name]",
		Short: "Add a remote Loki server",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := "default"
			if len(args) > 0 {
				name = args[0]
			}

			if err := runConfigureRemoteCmd(name, os.Stdin); err != nil {
				log.Fatalln(err)
			}

			fmt.Printf("%s remote has been added to %s\n", name, helper.CfgFile)
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSuffix(line, "\n")
}

func createOriginFromReader(stdin io.Reader) *Origin {
	reader := bufio.NewReader(stdin)
	o := Origin{}

	fmt.Printf("URL (%s): ", defaultLokiUrl)
	url := readLine(reader)
	if len(url) < 1 {
		url = defaultLokiUrl
	}
	o.Url = url

	fmt.Print("Org ID (optional): ")
	o.OrgId = readLine(reader)

	fmt.Print("Username (optional): ")
	o.Username = readLine(reader)

	fmt.Print("Password (optional): ")
	o.Password = readLine(reader)

	fmt.Print("CA certificate path (optional): ")
	o.CaCert = readLine(reader)

	fmt.Print("Skip TLS verification (y/N): ")
	o.Insecure = strings.EqualFold(readLine(reader), "y")

	fmt.Print("Timeout in seconds (30): ")
	if timeout, err := strconv.Atoi(readLine(reader)); err == nil && timeout > 0 {
		o.Timeout = timeout
	}

	return &o
}

func runConfigureRemoteCmd(name string, stdin io.Reader) error {
	o := createOriginFromReader(stdin)

	viper.Set(fmt.Sprintf("%s.url", name), o.Url)
	viper.Set(fmt.Sprintf("%s.org_id", name), o.OrgId)
	viper.Set(fmt.Sprintf("%s.username", name), o.Username)
	viper.Set(fmt.Sprintf("%s.password", name), o.Password)
	viper.Set(fmt.Sprintf("%s.ca_cert", name), o.CaCert)
	viper.Set(fmt.Sprintf("%s.insecure_skip_verify", name), o.Insecure)
	if o.Timeout > 0 {
		viper.Set(fmt.Sprintf("%s.timeout", name), o.Timeout)
	}

	remote := viper.GetString("remote")
	if len(remote) < 1 {
		viper.Set("remote", name)
	}

	if err := viper.WriteConfigAs(helper.CfgFile); err != nil {
		fmt.Printf("Unable to write config : %s", err)
		return err
	}

	return nil
}
