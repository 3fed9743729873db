// Package config declares the runtime configuration of the storefront
// service, parsed from the environment with the STOREFRONT prefix.
package config

import "time"

type Config struct {
	Web      Web
	DB       DB
	Session  Session
	Admin    Admin
	Storage  Storage
	Checkout Checkout
	Cors     Cors
	Rate     Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:3000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:storefront"`
	DisableTLS bool   `conf:"default:true"`
	Migrate    bool   `conf:"default:true"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:168h"`
}

// Admin configures the shared admin credential and the cookie that proves it.
type Admin struct {
	Password       string        `conf:"mask"`
	CookieSecure   bool          `conf:"default:false"`
	CookieLifetime time.Duration `conf:"default:168h"`
}

type Storage struct {
	Bucket        string `conf:"default:storefront-products"`
	PublicBaseURL string `conf:"default:https://storage.googleapis.com"`
}

type Checkout struct {
	// WhatsappPhone is the order-taking number, country code first, no plus.
	WhatsappPhone string `conf:"default:905079656645"`
}

type Cors struct {
	Origin string
}

type Rate struct {
	Burst    int           `conf:"default:5"`
	Expiry   int           `conf:"default:15"`
	Interval time.Duration `conf:"default:1s"`
}
