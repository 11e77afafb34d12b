// Package auth manages upstream API credentials through the system keyring.
//
// Credentials are resolved keyring-first with a plaintext viper fallback, so
// users on headless systems without a secret service can still configure keys
// through the config file or environment variables.
package auth

import (
	"fmt"
	"strings"

	"github.com/mediadex-cli/mediadex/constant"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// keyringService is the generic service identifier for the system keyring.
const keyringService = constant.Mediadex

// Set saves a credential for the named upstream API to the system keyring.
func Set(apiName, credential string) error {
	if credential == "" {
		return fmt.Errorf("credential cannot be empty")
	}
	err := keyring.Set(keyringService, keyringUser(apiName), credential)
	if err != nil {
		log.Error("Failed to save credential to keyring: " + err.Error())
		return err
	}
	return nil
}

// Get retrieves a credential for the named upstream API.
// Resolution order: system keyring, then the provided viper key.
// An empty string means the credential is not configured anywhere.
func Get(apiName, viperKey string) string {
	credential, err := keyring.Get(keyringService, keyringUser(apiName))
	if err == nil && credential != "" {
		return credential
	}
	// Common to not have a keyring entry yet, so only log at info level.
	log.Infof("no keyring credential for %s: %v", apiName, err)

	if viperKey == "" {
		return ""
	}
	return viper.GetString(viperKey)
}

// Delete removes the credential for the named upstream API from the system keyring.
func Delete(apiName string) error {
	err := keyring.Delete(keyringService, keyringUser(apiName))
	if err != nil {
		log.Error("Failed to delete credential from keyring: " + err.Error())
		return err
	}
	return nil
}

func keyringUser(apiName string) string {
	return strings.ToLower(strings.ReplaceAll(apiName, " ", "_")) + "_credential"
}
