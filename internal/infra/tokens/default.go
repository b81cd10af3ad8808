package tokens

import "yamdb/config"

// Codes builds a CodeGenerator from the loaded configuration.
func Codes() (*CodeGenerator, error) {
	return NewCodeGenerator(config.SECRET_KEY, config.CONFIRMATION_CODE_TTL)
}

// Default builds an Issuer from the loaded configuration.
func Default() (*Issuer, error) {
	return NewIssuer(config.JWT_SECRET, config.ACCESS_TOKEN_TTL, config.REFRESH_TOKEN_TTL)
}
