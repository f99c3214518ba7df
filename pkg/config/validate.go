package config

import (
	"errors"
	"fmt"
)

// ErrPortsMustDiffer is returned when the proxy port and the app's target
// port are configured to the same value
var ErrPortsMustDiffer = errors.New("\"port\" and \"targetPort\" must be different")

// ValidateStringProperty fails when the named property is present in the
// raw dev block but is not a string. Absent properties pass.
func ValidateStringProperty(raw map[string]any, name string) error {
	v, ok := rawValue(raw, name)
	if !ok || v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return fmt.Errorf("property %q must be a string", name)
	}
	return nil
}

// ValidateNumberProperty is the numeric analogue of ValidateStringProperty
func ValidateNumberProperty(raw map[string]any, name string) error {
	v, ok := rawValue(raw, name)
	if !ok || v == nil {
		return nil
	}
	switch v.(type) {
	case int, int64, float64:
		return nil
	}
	return fmt.Errorf("property %q must be a number", name)
}

// ValidateFrameworkConfig type-checks the fields the resolution engine
// consumes and rejects a dev block whose public-facing port and internal
// app port coincide.
func ValidateFrameworkConfig(raw map[string]any) error {
	if err := ValidateStringProperty(raw, "command"); err != nil {
		return err
	}
	if err := ValidateNumberProperty(raw, "port"); err != nil {
		return err
	}
	if err := ValidateNumberProperty(raw, "targetPort"); err != nil {
		return err
	}

	port := intField(raw, "port")
	targetPort := intField(raw, "targetPort")
	if port != 0 && port == targetPort {
		return ErrPortsMustDiffer
	}
	return nil
}

// ValidateDevConfig runs the shape checks over the whole dev block before
// it is converted into a typed DevConfig
func ValidateDevConfig(raw map[string]any) error {
	for _, name := range []string{"framework", "command", "publish", "functions", "jwtSecret", "jwtRolePath"} {
		if err := ValidateStringProperty(raw, name); err != nil {
			return err
		}
	}
	for _, name := range []string{"port", "targetPort", "functionsPort", "staticServerPort"} {
		if err := ValidateNumberProperty(raw, name); err != nil {
			return err
		}
	}

	if v, ok := rawValue(raw, "https"); ok && v != nil {
		https, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("property %q must be an object with %q and %q", "https", "keyFile", "certFile")
		}
		if err := ValidateStringProperty(https, "keyFile"); err != nil {
			return err
		}
		if err := ValidateStringProperty(https, "certFile"); err != nil {
			return err
		}
	}

	return ValidateFrameworkConfig(raw)
}

// ValidateConfiguredPort rejects a requested proxy port that collides with
// the port the framework dev server itself binds; one proxies the other so
// they can never be the same socket.
func ValidateConfiguredPort(cfg *DevConfig, detectedPort int) error {
	if cfg.Port != 0 && cfg.Port == detectedPort {
		return fmt.Errorf("the configured port %d cannot be the same as the framework server port; use \"targetPort\" for the app server", cfg.Port)
	}
	return nil
}
