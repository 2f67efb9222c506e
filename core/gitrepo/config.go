package gitrepo

// Config holds configuration for one git-backed repository.
type Config struct {
	// URL is the remote to clone from and push to (SSH or HTTPS).
	URL string `mapstructure:"url" default:""`
	// Path is the local working directory of the checkout.
	Path string `mapstructure:"path" default:""`
	// SSHKeyPath is the private key used for SSH remotes. Empty means the
	// default SSH agent / key resolution applies.
	SSHKeyPath string `mapstructure:"ssh_key_path" default:""`
	// SSHKeyPassphrase unlocks the private key if it is encrypted.
	SSHKeyPassphrase string `mapstructure:"ssh_key_passphrase" default:""`
	// Token is a bearer token for HTTPS remotes. Ignored when empty.
	Token string `mapstructure:"token" default:""`
	// AuthorName is the committer identity recorded on every commit.
	AuthorName string `mapstructure:"author_name" default:"host-manager"`
	// AuthorEmail is the committer email recorded on every commit.
	AuthorEmail string `mapstructure:"author_email" default:"host-manager@localhost"`
}
