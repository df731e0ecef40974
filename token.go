package authsession

const (
	authorizationHeader = "Authorization"
	// The backend reserves the Bearer scheme for its own OAuth validation
	// and Token for API key pairs, so installed JWTs use a distinct one.
	jwtTokenScheme = "JWTToken"
	rawTokenScheme = "Token"
)

// setAuthToken installs the token on the shared outgoing header table.
// Installing is conditional on JWT mode; clearing is unconditional.
// Callers hold c.mu.
func (c *Controller) setAuthToken(token string) {
	if !c.useJWT {
		c.clearAuthToken()
		return
	}
	c.currentToken = token
	c.headers.Set(authorizationHeader, jwtTokenScheme+" "+token)
}

// clearAuthToken removes the credential header entirely. Callers hold c.mu.
func (c *Controller) clearAuthToken() {
	c.currentToken = ""
	c.headers.Del(authorizationHeader)
}

// CurrentToken returns the held token in the backend's API scheme, or ""
// when no token is installed.
func (c *Controller) CurrentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentToken == "" {
		return ""
	}
	return rawTokenScheme + " " + c.currentToken
}
