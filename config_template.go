package main

const configTemplate = `# {{ index .Help "api" }}
api: {{ .Config.API }}
# {{ index .Help "base-url" }}
# base-url: https://generativelanguage.googleapis.com
# {{ index .Help "api-key-env" }}
api-key-env: {{ .Config.APIKeyEnv }}
# {{ index .Help "model" }}
model: {{ .Config.Model }}
# {{ index .Help "temp" }}
temp: {{ .Config.Temperature }}
# {{ index .Help "max-tokens" }}
max-tokens: {{ .Config.MaxTokens }}
# {{ index .Help "timeout" }}
timeout: 0s
# {{ index .Help "raw" }}
raw: false
# {{ index .Help "quiet" }}
quiet: false
# {{ index .Help "log-level" }}
log-level: {{ .Config.LogLevel }}
# {{ index .Help "addr" }}
addr: {{ .Config.Addr }}
# {{ index .Help "rate-limit" }}
rate-limit: 0
# {{ index .Help "rate-burst" }}
rate-burst: 1
`
