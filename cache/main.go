package cache

import (
	"encoding/json"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Receipt records the last upgrade performed by this binary.
type Receipt struct {
	Name string    `json:"name"`
	From string    `json:"from,omitempty"`
	To   string    `json:"to"`
	URL  string    `json:"url"`
	Time time.Time `json:"time"`
}

func path() (string, error) {
	path, err := xdg.CacheFile("ghup.json")
	if err != nil {
		return "", errors.Wrap(err, "cannot resolve cache file")
	}

	return path, nil
}

func Write(receipt Receipt) error {
	file, err := path()
	if err != nil {
		return err
	}

	// dont forget to import "encoding/json"
	receiptJSON, err := json.MarshalIndent(receipt, "", "    ")
	if err != nil {
		return errors.Wrap(err, "cannot marshal receipt")
	}

	err = os.WriteFile(file, receiptJSON, 0o644)
	if err != nil {
		return errors.Wrap(err, "cannot write cache file")
	}

	log.WithFields(log.Fields{
		"file": file,
	}).Debug("wrote upgrade receipt")

	return nil
}

func Load() (Receipt, error) {
	file, err := path()
	if err != nil {
		return Receipt{}, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return Receipt{}, errors.Wrap(err, "cannot read cache file")
	}

	var receipt Receipt

	err = json.Unmarshal(data, &receipt)
	if err != nil {
		return Receipt{}, errors.Wrap(err, "cannot parse cache file")
	}

	return receipt, nil
}
