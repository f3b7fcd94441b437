// Package reference serves the static reference data shipped with the
// binary: immigration pathways, canned chat replies and simplified long
// essay questions. The data lives in embedded YAML files under data/.
package reference
