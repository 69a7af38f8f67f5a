package api_keys

import "fmt"

// RequireScope authorizes one action against a validated key. Pure
// set-membership; deny errors name the missing capability so a 403 can
// tell the caller exactly what to request.
func RequireScope(apiKey *ApiKey, requiredScope Scope) error {
	if apiKey.HasScope(requiredScope) {
		return nil
	}

	return fmt.Errorf("missing required scope: %s", requiredScope)
}
