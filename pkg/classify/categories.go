package classify

// GenericCategories apply to every platform.
var GenericCategories = []string{
	"privacy_security",
	"performance_optimization",
	"productivity_workflow",
	"ui_customization",
	"navigation_search",
	"integrations_connectors",
	"data_storage_backup",
	"monitoring_observability",
	"automation_workflow",
	"developer_tools",
	"language_support",
	"code_quality_linting",
	"testing_debugging",
	"build_ci_cd",
	"documentation_templates",
	"content_media",
	"accessibility",
	"education_reference",
	"ecommerce_payments",
	"seo_marketing",
	"gaming_modding",
	"iot_smart_home",
	"utilities_misc",
}

// PlatformCategories are the per-platform taxonomies the model picks from.
var PlatformCategories = map[string][]string{
	"chrome": {
		"ad_blocking_privacy",
		"security_authentication",
		"productivity_workflow",
		"tabs_bookmarks_management",
		"customization_theming",
		"social_communication",
		"media_entertainment",
		"shopping_price_tracking",
		"developer_tools",
		"translation_language",
		"accessibility",
		"education_reference",
		"integrations_connectors",
		"utilities_misc",
	},
	"firefox": {
		"privacy_security",
		"ad_blocking_content_filtering",
		"productivity_workflow",
		"tabs_bookmarks_management",
		"customization_theming",
		"social_communication",
		"media_entertainment",
		"shopping_price_tracking",
		"developer_tools",
		"translation_language",
		"accessibility",
		"education_reference",
		"integrations_connectors",
		"utilities_misc",
	},
	"homeassistant": {
		"device_integration",
		"dashboard_ui_cards",
		"automation_workflow",
		"monitoring_alerting",
		"energy_environment",
		"security_safety",
		"media_entertainment",
		"networking_connectivity",
		"data_storage_backup",
		"performance_optimization",
		"utilities_misc",
	},
	"jetbrains": {
		"ide_productivity",
		"language_support",
		"code_quality_linting",
		"testing_debugging",
		"build_ci_cd",
		"vcs_collaboration",
		"ui_ux_theming",
		"navigation_search",
		"documentation_snippets",
		"integrations_connectors",
		"database_tools",
		"performance_optimization",
		"utilities_misc",
	},
	"minecraft": {
		"gameplay_mechanics",
		"world_generation",
		"performance_optimization",
		"graphics_visuals",
		"ui_quality_of_life",
		"items_blocks",
		"mobs_entities",
		"automation_tech",
		"magic_rpg",
		"multiplayer_server",
		"mod_framework_library",
		"utilities_misc",
	},
	"obsidian": {
		"note_taking_writing",
		"organization_tagging",
		"knowledge_management",
		"productivity_workflow",
		"ui_customization",
		"data_visualization",
		"task_project_management",
		"templates_snippets",
		"integrations_connectors",
		"publishing_sharing",
		"developer_tools",
		"utilities_misc",
	},
	"sublime": {
		"language_support",
		"code_quality_linting",
		"formatting_styling",
		"navigation_search",
		"ui_theming",
		"productivity_workflow",
		"build_run_tools",
		"testing_debugging",
		"snippets_templates",
		"vcs_collaboration",
		"utilities_misc",
	},
	"vscode": {
		"language_support",
		"code_quality_linting",
		"formatting_styling",
		"testing_debugging",
		"build_ci_cd",
		"vcs_collaboration",
		"ui_theming",
		"navigation_search",
		"snippets_templates",
		"cloud_remote_dev",
		"integrations_connectors",
		"productivity_workflow",
		"utilities_misc",
	},
	"wordpress": {
		"seo_marketing",
		"ecommerce_payments",
		"security_privacy",
		"performance_caching",
		"analytics_tracking",
		"content_editor_blocks",
		"design_themes_ui",
		"forms_leads",
		"backups_migration",
		"integrations_connectors",
		"membership_access",
		"developer_tools",
		"utilities_misc",
	},
}
