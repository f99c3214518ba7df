package settings

import (
	"errors"
	"fmt"
	"os"

	"devserve/pkg/config"
)

// resolveHTTPS reads the configured TLS key and certificate files. The two
// reads have no ordering dependency and run concurrently; either failing
// is fatal and names the file that could not be read.
func resolveHTTPS(cfg *config.HTTPSConfig) (*HTTPS, error) {
	if cfg.KeyFile == "" || cfg.CertFile == "" {
		return nil, errors.New("both \"keyFile\" and \"certFile\" are required for https")
	}

	type fileRead struct {
		isKey   bool
		content string
		err     error
	}

	results := make(chan fileRead, 2)
	readFile := func(path string, isKey bool) {
		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("error reading %s: %w", path, err)
		}
		results <- fileRead{isKey: isKey, content: string(data), err: err}
	}

	go readFile(cfg.KeyFile, true)
	go readFile(cfg.CertFile, false)

	out := &HTTPS{}
	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			return nil, r.err
		}
		if r.isKey {
			out.Key = r.content
		} else {
			out.Cert = r.content
		}
	}
	return out, nil
}
