// Package profiles owns tokn's authentication profiles.
//
// A profile is a named set of OAuth2 client settings (tenant, client ID,
// scopes, auth method, optional certificate path and default flow). Profiles
// are stored as a plaintext JSON array in profiles.json. The metadata never
// holds a secret: client secrets and certificate passwords live in the
// secrets backend under keys derived from the profile name, and the
// Repository's secret helpers are the only way to reach them.
//
// # Names
//
// Names are unique case-insensitively. Saving "SVC" when "svc" exists
// updates the existing record and keeps its original name and creation time.
//
// # Timestamps
//
// CreatedAt and UpdatedAt are read-only on AuthProfile. Only Repository.Save
// stamps them, so the creation time survives every edit.
//
// # Corruption
//
// A profiles.json that cannot be parsed is treated as empty and a warning is
// logged. The unreadable file is copied to profiles.json.bak before the next
// save replaces it.
//
// # Validation
//
// Validate runs on demand (before authenticating), not on load, so a profile
// whose certificate has since been deleted can still be listed and edited.
package profiles
