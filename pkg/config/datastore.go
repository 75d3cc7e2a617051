package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Store holds the invocation-independent settings: where the
// spreadsheet lives and how to reach it.
type Store struct {
	CredentialsFile string
	SpreadsheetID   string
	DefaultSheet    string
	ListenAddress   string
	XLSXFile        string // set to run against a local workbook instead
}

type Datastore struct {
	Filename string
	Store    Store
}

// Save writes the current config out to a toml file.
func (d *Datastore) Save() error {
	b, err := toml.Marshal(d.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(d.Filename, b, 0644)
}

// Load reads the current config from a toml file.
func (d *Datastore) Load() error {
	b, err := os.ReadFile(d.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &d.Store)
}

// NewDatastore loads the config file, creating it with defaults when it
// does not exist yet. Environment variables fill any gaps.
func NewDatastore(filename string) (*Datastore, error) {
	d := &Datastore{
		Filename: filename,
	}
	if err := d.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := d.Save(); err != nil {
				return nil, err
			}
		}
	}
	// Set some defaults
	if d.Store.CredentialsFile == "" {
		d.Store.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if d.Store.SpreadsheetID == "" {
		d.Store.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	}
	if d.Store.ListenAddress == "" {
		d.Store.ListenAddress = ":80"
	}
	return d, nil
}
