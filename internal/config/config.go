package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"aqualeaf"`
	DBPath     string `env:"DBPath" envDefault:"datas/aqualeaf.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	JWTSecret         string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer         string `env:"JWT_ISSUER" envDefault:"aqualeaf"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" envDefault:"60"`

	// Base URL embedded in verification and reset links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// SMTP delivery settings. When SMTP_HOST is empty the server falls back
	// to a log-only mailer.
	SMTPHost     string `env:"SMTP_HOST" envDefault:""`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME" envDefault:""`
	SMTPPassword string `env:"SMTP_PASSWORD" envDefault:""`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"AquaLeaf Support <aqualeaf@gmail.com>"`

	// Verification tokens historically never expire; 0 keeps that behaviour.
	VerificationTokenTTLMinutes int `env:"VERIFICATION_TOKEN_TTL_MINUTES" envDefault:"0"`
	ResetTokenTTLMinutes        int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"60"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Administrators are pre-provisioned, there is no registration flow.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
