package cache

import "fmt"

// Key constructors for the lookups the screens share. The cache imposes
// no structure on keys beyond string equality; these only keep call
// sites consistent.

func NetworkKey(networkID string) string {
	return fmt.Sprintf("network-%s", networkID)
}

func NetworkLinesKey(networkID string) string {
	return fmt.Sprintf("lines-%s", networkID)
}

func LineKey(lineID, networkID string) string {
	return fmt.Sprintf("line-%s-%s", lineID, networkID)
}

func DirectionsKey(lineID, networkID string) string {
	return fmt.Sprintf("directions-%s-%s", lineID, networkID)
}
