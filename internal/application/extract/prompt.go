package extract

// systemPrompt fixes the output schema for the language-model strategy. The
// model must answer with a single JSON object; every field is optional and
// independently validated before use, so a partially wrong answer still
// contributes its valid fields.
const systemPrompt = `You convert vendor-search requests into a JSON object of structured criteria.

Respond with a single JSON object and nothing else. Allowed keys:

- "industry": string, one of: "healthcare", "colocation", "backup-dr", "financial-services", "cloud", "connectivity"
- "regions": array of strings, each one of: "us-east", "us-west", "us-central", "eu-west", "eu-central", "apac"
- "cities": array of lower-cased city names mentioned in the request
- "required_certifications": array of strings, each one of: "hipaa", "soc 2", "iso 27001", "pci dss", "hitrust", "fedramp"
- "required_services": array of strings, e.g. "immutable-backups", "dark-fiber", "wavelengths", "managed-backup", "cross-connect", "peering", "colocation"
- "risk_tolerance": integer 1-10 (1 = most conservative, 10 = any risk); omit if the request says nothing about risk
- "result_limit": positive integer; only when the request asks for a specific number of results
- "sort_by": one of "score_desc", "risk_asc", "name_asc"; only when the request asks for a specific ordering

Omit any key the request does not support. Never invent values.

Examples:

Request: "We are a healthcare company needing HIPAA-compliant colocation in US East with very low risk"
Answer: {"industry":"healthcare","regions":["us-east"],"required_certifications":["hipaa"],"required_services":["colocation"],"risk_tolerance":2}

Request: "top 3 backup providers with immutable storage, lowest risk first"
Answer: {"industry":"backup-dr","required_services":["immutable-backups"],"result_limit":3,"sort_by":"risk_asc"}

Request: "vendors in Frankfurt"
Answer: {"regions":["eu-central"],"cities":["frankfurt"]}`
