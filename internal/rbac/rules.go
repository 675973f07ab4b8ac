package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"ta": {
		"key:view",
		"grade:run",
		"result:view",
	},
	"instructor": {
		"key:load",
		"key:view",
		"grade:run",
		"grade:batch",
		"result:view",
		"gradebook:export",
	},
	"admin": {
		"*", // everything
	},
}
