package help

const ColdstartYAML = `# term-ranker Quick Start

outputs:
  output.txt: "Plain text report (default)"
  report.md: "Markdown with tables and a pie chart"
  report.yaml: "Structured YAML"
  report.json: "Structured JSON"
  runs.db: "Appends the run to a SQLite database"
  "-": "Plain text to stdout"

commands:
  basic_count: |
    term-ranker count --folder sample_pdfs

  top_quarter: |
    term-ranker count --folder docs --top-fraction 0.25 --output report.md

  full_ranking: |
    term-ranker count --folder docs --all --output -

  mixed_formats: |
    term-ranker count --folder docs --ext pdf,html,txt

  inspect_document: |
    term-ranker extract docs/paper.pdf

  store_and_list: |
    term-ranker count --folder docs --output runs.db
    term-ranker runs --db runs.db
    term-ranker runs show --db runs.db

  write_config: |
    term-ranker init

config:
  lookup: "--config, then ./term-ranker.yaml, then $XDG_CONFIG_HOME/term-ranker/config.yaml"
  environment: "TERM_RANKER_FOLDER, TERM_RANKER_TOP_FRACTION, ... (also read from .env)"
  precedence: "flags > environment > config file > defaults"
`

// ConfigTemplate is written by the init command. Its values match the
// built-in defaults.
const ConfigTemplate = `# term-ranker configuration

# Folder scanned for documents (not recursive).
folder: sample_pdfs

# Report destination. The extension picks the format:
# .txt, .md, .yaml, .json, .db/.sqlite, or "-" for stdout.
output: output.txt

# Fraction of unique terms to report, in (0, 1].
top_fraction: 0.10

# Documents read concurrently.
workers: 4

# Document types to read. Supported: .pdf .html .htm .txt .md
extensions:
  - .pdf

# Candidate languages for per-document detection. Use [] to disable.
languages:
  - english
  - portuguese

# Longest compound term, in words.
max_compound_words: 4

# Shortest single-word term, in characters.
min_term_length: 3
`
