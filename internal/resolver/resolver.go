// Where: internal/resolver/resolver.go
// What: Profile + configuration template resolution into a RunJobFlow document.
// Why: Launch workflows name a profile and a template; EMR needs one merged request.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/poruru-code/emr-launch/internal/config"
	"github.com/poruru-code/emr-launch/internal/domain/emr"
	"github.com/poruru-code/emr-launch/internal/logging"
	"github.com/poruru-code/emr-launch/internal/meta"
	"github.com/poruru-code/emr-launch/internal/paramstore"
	"github.com/poruru-code/emr-launch/internal/schema"
	"go.uber.org/zap"
)

// Request names the cluster, profile, and template to resolve.
type Request struct {
	ClusterName            string `json:"ClusterName"`
	ProfileNamespace       string `json:"ProfileNamespace"`
	ProfileName            string `json:"ProfileName"`
	ConfigurationNamespace string `json:"ConfigurationNamespace"`
	ConfigurationName      string `json:"ConfigurationName"`
}

// withDefaults fills the cluster name and namespaces.
func (r Request) withDefaults() Request {
	if strings.TrimSpace(r.ClusterName) == "" {
		r.ClusterName = r.ConfigurationName
	}
	if strings.TrimSpace(r.ProfileNamespace) == "" {
		r.ProfileNamespace = meta.DefaultNamespace
	}
	if strings.TrimSpace(r.ConfigurationNamespace) == "" {
		r.ConfigurationNamespace = meta.DefaultNamespace
	}
	return r
}

// Options configures a Resolver. Empty fields take the defaults.
type Options struct {
	ProfilesPrefix       string
	ConfigurationsPrefix string
	LogURITemplate       string
	Logger               *zap.Logger
}

// OptionsFromSettings maps runtime settings onto resolver options.
func OptionsFromSettings(settings config.Settings, logger *zap.Logger) Options {
	return Options{
		ProfilesPrefix:       settings.Parameters.ProfilesPrefix,
		ConfigurationsPrefix: settings.Parameters.ConfigurationsPrefix,
		LogURITemplate:       settings.LogURITemplate,
		Logger:               logger,
	}
}

// Resolver reads profiles and templates from a store and merges them.
// It never writes to the store.
type Resolver struct {
	store                paramstore.Store
	profilesPrefix       string
	configurationsPrefix string
	logURI               *template.Template
	logger               *zap.Logger
}

func New(store paramstore.Store, opts Options) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("resolver: store is nil")
	}
	if opts.ProfilesPrefix == "" {
		opts.ProfilesPrefix = meta.ProfilesPrefix
	}
	if opts.ConfigurationsPrefix == "" {
		opts.ConfigurationsPrefix = meta.ConfigurationsPrefix
	}
	if opts.LogURITemplate == "" {
		opts.LogURITemplate = config.DefaultLogURITemplate
	}
	tmpl, err := parseLogURITemplate(opts.LogURITemplate)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		store:                store,
		profilesPrefix:       opts.ProfilesPrefix,
		configurationsPrefix: opts.ConfigurationsPrefix,
		logURI:               tmpl,
		logger:               logging.OrNop(opts.Logger),
	}, nil
}

// Resolve loads the profile and template named by req and returns the merged
// cluster configuration.
//
// A missing profile is reported before the template is read, so
// ProfileNotFoundError wins whether or not the template exists. Both
// documents are decoded only after both lookups succeed: a malformed
// profile paired with a missing template reports ConfigurationNotFoundError,
// and the StructuralError surfaces once the template exists.
func (r *Resolver) Resolve(ctx context.Context, req Request) (emr.Document, error) {
	req = req.withDefaults()
	logger := r.logger.With(zap.Any("event", req))

	rawProfile, err := r.fetch(ctx, logger, paramstore.Key(r.profilesPrefix, req.ProfileNamespace, req.ProfileName))
	if err != nil {
		return nil, err
	}
	if !rawProfile.Found {
		notFound := &ProfileNotFoundError{Namespace: req.ProfileNamespace, Name: req.ProfileName}
		logger.Error(notFound.Error())
		return nil, notFound
	}

	rawTemplate, err := r.fetch(ctx, logger, paramstore.Key(r.configurationsPrefix, req.ConfigurationNamespace, req.ConfigurationName))
	if err != nil {
		return nil, err
	}
	if !rawTemplate.Found {
		notFound := &ConfigurationNotFoundError{Namespace: req.ConfigurationNamespace, Name: req.ConfigurationName}
		logger.Error(notFound.Error())
		return nil, notFound
	}

	profile, err := decodeProfile(rawProfile.Value)
	if err != nil {
		return nil, logStructural(logger, "profile", err)
	}
	logger.Info("ProfileFound", zap.Any("profile", profile))

	cluster, err := decodeClusterConfiguration(rawTemplate.Value)
	if err != nil {
		return nil, logStructural(logger, "configuration", err)
	}
	logger.Info("ConfigurationFound", zap.Any("configuration", cluster))

	if err := r.merge(cluster, profile, req); err != nil {
		return nil, logStructural(logger, "configuration", err)
	}
	logger.Info("ClusterConfig", zap.Any("cluster_config", cluster))
	return cluster, nil
}

// fetch reads key, logging and returning store failures unchanged.
func (r *Resolver) fetch(ctx context.Context, logger *zap.Logger, key string) (paramstore.Lookup, error) {
	lookup, err := r.store.Get(ctx, key)
	if err != nil {
		logger.Error("Error processing event",
			zap.String("key", key),
			zap.Error(err),
			zap.Stack("stack"),
		)
		return paramstore.Lookup{}, err
	}
	return lookup, nil
}

func (r *Resolver) merge(cluster emr.Document, profile emr.Profile, req Request) error {
	instances, err := cluster.Object(emr.FieldInstances)
	if err != nil {
		return err
	}
	logURI, err := renderLogURI(r.logURI, LogURIData{
		LogsBucket:        profile.LogsBucket,
		ClusterName:       req.ClusterName,
		ProfileNamespace:  req.ProfileNamespace,
		ProfileName:       req.ProfileName,
		ConfigurationName: req.ConfigurationName,
	})
	if err != nil {
		return fmt.Errorf("render log uri: %w", err)
	}

	cluster[emr.FieldName] = req.ClusterName
	cluster[emr.FieldLogURI] = logURI
	cluster[emr.FieldJobFlowRole] = emr.RoleName(profile.Roles.InstanceRole)
	cluster[emr.FieldServiceRole] = emr.RoleName(profile.Roles.ServiceRole)
	cluster[emr.FieldAutoScalingRole] = emr.RoleName(profile.Roles.AutoScalingRole)
	instances[emr.FieldMasterSecurityGroup] = profile.SecurityGroups.MasterGroup
	instances[emr.FieldSlaveSecurityGroup] = profile.SecurityGroups.WorkersGroup
	instances[emr.FieldServiceAccessGroup] = profile.SecurityGroups.ServiceGroup
	cluster[emr.FieldSecurityConfiguration] = profile.SecurityConfiguration()
	return nil
}

func decodeProfile(raw string) (emr.Profile, error) {
	doc, err := emr.DecodeDocument([]byte(raw))
	if err != nil {
		return emr.Profile{}, err
	}
	if err := schema.Validate(schema.KindProfile, map[string]any(doc)); err != nil {
		return emr.Profile{}, err
	}
	var profile emr.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return emr.Profile{}, err
	}
	return profile, nil
}

// decodeClusterConfiguration returns the ClusterConfiguration member of a
// stored template. Each call decodes a fresh copy.
func decodeClusterConfiguration(raw string) (emr.Document, error) {
	doc, err := emr.DecodeDocument([]byte(raw))
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.KindConfiguration, map[string]any(doc)); err != nil {
		return nil, err
	}
	return doc.Object(emr.FieldClusterConfiguration)
}

func logStructural(logger *zap.Logger, subject string, err error) error {
	structural := &StructuralError{Subject: subject, Err: err}
	logger.Error("Error processing event", zap.Error(structural), zap.Stack("stack"))
	return structural
}
