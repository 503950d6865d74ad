/*
Package config holds the configuration file definition.

The configuration file, mailparse.conf, is optional. Without it, defaults are
used: log level error, the cyrillic charset guesser, no conversion to UTF-8.
The file is read once at startup.

Below is an "empty" config file, as printed by "mailparse config describe",
along with comments explaining the fields. Fields named "x" are placeholders for
user-chosen map keys.

# sconf

The config file is in "sconf" format. Properties of sconf files:

  - Indentation with tabs only.
  - "#" as first non-whitespace character makes the line a comment. Lines with a
    value cannot also have a comment.
  - Values don't have syntax indicating their type. For example, strings are
    not quoted/escaped and can never span multiple lines.
  - Fields that are optional can be left out completely.

See https://pkg.go.dev/github.com/mjl-/sconf for details.

# mailparse.conf

	# NOTE: This config file is in 'sconf' format. Indent with tabs. Comments must be
	# on their own line, they don't end a line. Do not escape or quote strings.
	# Details: https://pkg.go.dev/github.com/mjl-/sconf.

	# Default log level, one of: error, info, debug, trace.
	LogLevel:

	# Overrides of log level per package (e.g. message, charset, http, metrics).
	# (optional)
	PackageLogLevels:
		x:

	# Address for the HTTP webhook, with POST /parse and GET /metrics. Default:
	# localhost:8025. (optional)
	Listen:

	# Maximum size of a message in bytes, for the webhook and the parse command.
	# Larger messages are rejected before parsing. Default: 104857600 (100MB).
	# (optional)
	MaxMessageSize: 0

	# Convert all text in parsed messages to UTF-8, including text parts, which then
	# get encoding utf-8. (optional)
	ConvertUTF8: false

	# How to guess the charset of text without known charset that is not valid
	# UTF-8. One of: cyrillic (first charset that results in Cyrillic letters, for
	# mostly Cyrillic mail), chardet (statistical detection), chain (chardet, then
	# cyrillic), none (read as UTF-8, replacing invalid bytes). Default: cyrillic.
	# (optional)
	CharsetGuesser:

	# For text/html parts without charset in their Content-Type header, use the
	# charset from a meta element in the HTML. (optional)
	SniffHTMLCharset: false
*/
package config
