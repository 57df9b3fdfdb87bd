package config

const (
	// System is the key to use to prefix system log messages
	System = "[system]"
	// Shop is the key to use to prefix storefront log messages
	Shop = "[shop]"
	// Job is the key to use to prefix job log messages
	Job = "[job]"
	// Admin is the key to use to prefix admin log messages
	Admin = "[admin]"
)
