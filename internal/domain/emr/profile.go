// Where: internal/domain/emr/profile.go
// What: EMR profile record stored by the provisioning side.
// Why: The resolver needs typed access to roles, security groups, and the log bucket.
package emr

import "strings"

// Profile describes the account-level resources a cluster runs with.
type Profile struct {
	ProfileName               string         `json:"ProfileName,omitempty"`
	Namespace                 string         `json:"Namespace,omitempty"`
	LogsBucket                string         `json:"LogsBucket"`
	Roles                     Roles          `json:"Roles"`
	SecurityGroups            SecurityGroups `json:"SecurityGroups"`
	SecurityConfigurationName *string        `json:"SecurityConfigurationName,omitempty"`
}

// Roles holds IAM role ARNs.
type Roles struct {
	InstanceRole    string `json:"InstanceRole"`
	ServiceRole     string `json:"ServiceRole"`
	AutoScalingRole string `json:"AutoScalingRole"`
}

type SecurityGroups struct {
	MasterGroup  string `json:"MasterGroup"`
	WorkersGroup string `json:"WorkersGroup"`
	ServiceGroup string `json:"ServiceGroup"`
}

// SecurityConfiguration returns the named security configuration, or nil
// when the profile has none. Empty names count as none.
func (p Profile) SecurityConfiguration() any {
	if p.SecurityConfigurationName == nil || *p.SecurityConfigurationName == "" {
		return nil
	}
	return *p.SecurityConfigurationName
}

// RoleName returns the last path segment of an IAM role ARN.
// "arn:aws:iam::123:role/service/EMRRole" -> "EMRRole".
func RoleName(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}
