package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/pm"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/render"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/yarnwhy"
)

// newChainsCmd creates the chains command.
func newChainsCmd() *cobra.Command {
	var (
		dir   string
		graph string
	)

	cmd := &cobra.Command{
		Use:   "chains <package>[@version]",
		Short: "Print the dependency chains for one package",
		Long: `Chains explains why a package is installed, using the project's package
manager. When no version is given, the installed version is read from
node_modules. With --graph the chains are also drawn as an SVG diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pkg, version := splitPackageArg(args[0])

			runner := &pm.ExecRunner{Dir: dir}
			mgr, err := pm.Detect(dir, runner)
			if err != nil {
				return err
			}

			if version == "" {
				version, err = mgr.Version(pkg)
				if err != nil {
					return err
				}
			}

			chain := mgr.DependencyChain(ctx, pkg, version)
			printKeyValue("Package", pkg+"@"+version)
			for _, c := range strings.Split(chain, yarnwhy.Separator) {
				printDetail("%s", c)
			}

			if graph != "" {
				if chain == yarnwhy.NoTranscript || chain == yarnwhy.NoChains {
					return fmt.Errorf("no chains to draw for %s@%s", pkg, version)
				}
				dot := render.ChainsToDOT(pkg, strings.Split(chain, yarnwhy.Separator))
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				if err := os.WriteFile(graph, svg, 0o644); err != nil {
					return err
				}
				printFile(graph)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "project directory")
	cmd.Flags().StringVar(&graph, "graph", "", "write the chains as an SVG diagram to this path")

	return cmd
}

// splitPackageArg splits "pkg@version" into its parts. Scoped packages keep
// their leading "@scope/" intact.
func splitPackageArg(arg string) (pkg, version string) {
	if i := strings.LastIndex(arg, "@"); i > 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, ""
}
