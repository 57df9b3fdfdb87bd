package config

import "fmt"

const exampleConfigFile = `# TechStore configuration
#
# Any value here can also be set with an environment variable prefixed
# with TECHSTORE_, or a command line flag. Flags win over environment
# variables, which win over this file.

# Run in server mode. Leave false for local development.
server = false

# Run background jobs (stats flushing, session sweeping, seed watching).
jobs = true

[database]
driver = "sqlite3"
connectionstring = "techstore.db"
migrate = true
maxconnections = 50

[stats]
collect = true
migrate = true
driver = "sqlite3"
connectionstring = "techstore_stats.db"
flushseconds = 10

[shop]
host = "0.0.0.0"
port = 8000
staticpath = "static"
seedfile = "catalog.seed.json"

[admin]
pathprefix = "/admin/"
username = "admin"
# password = "pick one"

[sessions]
store = "cookie"
# store = "boltdb" keeps carts on the server instead of in the cookie
# file = "techstore_sessions.db"
# Required in server mode; staff sessions use the same keys.
# Generate a pair with: techstore -keygen
# authkey = "64 chars of randomness"
# encryptionkey = "32 chars of randomness"
maxage = 1209600

[smtp]
# server = "smtp.example.com"
# port = 587
# user = "orders@example.com"
# password = "pick one"
sender = "orders@techstore.example"
emailscheme = "http"
emailhost = "localhost"
emailport = 8000

[stripe]
# secretkey = "sk_test_..."
# publishablekey = "pk_test_..."
`

// PrintExample writes an example techstore.conf to stdout.
func PrintExample() {
	fmt.Print(exampleConfigFile)
}
