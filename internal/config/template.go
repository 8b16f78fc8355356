package config

// DefaultConfigTOML is the starter configuration written by `datalysis init`.
const DefaultConfigTOML = `# datalysis configuration file
# Place this file as .datalysis.toml in your project directory.
# All settings are optional; unset keys fall back to the defaults shown.

[analysis]
# Glob patterns for data file discovery
include_patterns = ["*.csv"]
exclude_patterns = []
# Recurse into subdirectories when a directory is given
recursive = true
# Target column for imbalance and feature importance analysis
# target_column = "label"
# Number of rows shown in data previews
sample_rows = 5

[cleaning]
# Stage toggles
handle_missing = true
correct_types = true
remove_duplicates = true
handle_outliers = true
standardize_data = false
clean_text = true
validate_integrity = true
fix_formats = true
encode_categorical = false
create_bins = false
feature_engineering = false
aggregate_transform = false
clean_geospatial = false
handle_unit_conversions = false

# Missing-data handling
column_missing_threshold = 0.5
row_missing_threshold = 0.7
imputation_strategy = "smart"   # mean, median, smart
create_missing_indicators = false
use_knn_imputation = false
knn_neighbors = 5

# Outlier handling
outlier_method = "iqr"          # iqr, zscore
outlier_action = "cap"          # remove, cap, keep

# Scaling
scaling_method = "standard"     # standard, minmax, robust, log, boxcox

# Duplicates
fuzzy_duplicates = false

# Categorical encoding
encoding_method = "onehot"      # label, onehot, target, frequency
max_categories_onehot = 10

# Feature engineering
extract_date_features = true
extract_text_features = false

# Unit conversion
auto_detect_units = false

[ai]
# AI domain detection and insights
enabled = true
model = "gpt-4o-mini"
# Environment variable holding the API key
api_key_env = "OPENAI_API_KEY"
# Rows of sample data sent to the AI collaborator
max_sample_rows = 10

[output]
format = "text"                 # text, json, yaml, csv
show_details = false
`
