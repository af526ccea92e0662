package github

import (
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Token returns the configured token, falling back to the `[github] token`
// entry of ~/.gitconfig as written by hub(1).
func Token(configured string) string {
	if configured != "" {
		return configured
	}

	path, err := homedir.Expand("~/.gitconfig")
	if err != nil {
		return ""
	}

	config, err := ini.Load(path)
	if err != nil {
		return ""
	}

	token := config.Section("github").Key("token").String()
	if token != "" {
		log.WithFields(log.Fields{
			"path": path,
		}).Debug("using token from gitconfig")
	}

	return token
}
