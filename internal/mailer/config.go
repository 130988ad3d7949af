package mailer

import (
	"os"

	"gopkg.in/yaml.v2"
)

// SMTPServerList is the YAML-backed delivery configuration: one or more
// servers plus the envelope identity shared by all outbound mail.
type SMTPServerList struct {
	Servers []SMTPServer `yaml:"servers"`
	From    string       `yaml:"from"`
	ReplyTo []string     `yaml:"replyTo"`
}

// SMTPServer describes one SMTP endpoint of the pool.
type SMTPServer struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Connections        int    `yaml:"connections"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	AuthData           struct {
		Username string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	SendTimeoutSeconds int `yaml:"sendTimeout"`
}

// ReadFromFile loads and strictly parses the server list.
func (sl *SMTPServerList) ReadFromFile(fname string) error {
	yamlFile, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(yamlFile, sl)
}
