package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yavemu/bookadmin/internal/controller"
	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
)

// BrowseSession is the interactive dashboard: it owns one controller and
// redraws the page after every transition, mirroring the fetch/re-render
// loop of the web dashboard it replaces.
type BrowseSession struct {
	cfg  *schema.EntityConfig
	ctrl *controller.Controller
	in   io.Reader
	out  io.Writer
}

// NewBrowseSession creates an interactive session over a controller.
func NewBrowseSession(cfg *schema.EntityConfig, ctrl *controller.Controller, in io.Reader, out io.Writer) *BrowseSession {
	return &BrowseSession{cfg: cfg, ctrl: ctrl, in: in, out: out}
}

// Run fetches the initial page, then processes commands until quit or EOF.
func (s *BrowseSession) Run() error {
	if err := s.ctrl.Refresh(); err != nil {
		RenderError(s.out, s.cfg, err)
	} else {
		s.render()
	}

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprintf(s.out, "%s> ", s.cfg.Entity)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" || line == "salir" {
			return nil
		}

		if err := s.dispatch(line); err != nil {
			RenderError(s.out, s.cfg, err)
			continue
		}
		s.render()
	}
}

// dispatch applies one browse command as a controller transition.
func (s *BrowseSession) dispatch(line string) error {
	parts := strings.Fields(line)
	command, args := parts[0], parts[1:]

	switch command {
	case "n", "next":
		return s.ctrl.SetPage(s.ctrl.Page() + 1)
	case "p", "prev":
		return s.ctrl.SetPage(s.ctrl.Page() - 1)
	case "page":
		if len(args) != 1 {
			return fmt.Errorf("uso: page <número>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("uso: page <número>")
		}
		return s.ctrl.SetPage(n)
	case "size":
		if len(args) != 1 {
			return fmt.Errorf("uso: size <número>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("uso: size <número>")
		}
		return s.ctrl.SetPageSize(n)
	case "sort":
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("uso: sort <campo> [asc|desc]")
		}
		direction := models.SortDesc
		if len(args) == 2 {
			direction = args[1]
		}
		return s.ctrl.SetSort(args[0], direction)
	case "search", "s":
		if len(args) == 0 {
			return fmt.Errorf("uso: search <término>")
		}
		return s.ctrl.RunSearch(strings.Join(args, " "))
	case "f", "filter":
		filters, err := parseFieldPairs(args)
		if err != nil {
			return err
		}
		if err := validateFilters(s.cfg, filters); err != nil {
			return err
		}
		return s.ctrl.RunFilter(filters, false)
	case "a", "auto":
		term := strings.Join(args, " ")
		return s.ctrl.RunAutoFilter(term)
	case "clear", "c":
		return s.ctrl.ClearSearch()
	case "r", "refresh":
		return s.ctrl.Refresh()
	case "h", "help", "ayuda":
		s.printHelp()
		return nil
	default:
		return fmt.Errorf("comando desconocido '%s' (use 'help')", command)
	}
}

func (s *BrowseSession) render() {
	fmt.Fprintln(s.out)
	RenderPage(s.out, s.cfg, s.ctrl.Data(), s.ctrl.Meta())

	sortBy, sortOrder := s.ctrl.Sort()
	fmt.Fprintf(s.out, "Página %d | Orden: %s %s | Modo: %s\n",
		s.ctrl.Page(), sortBy, sortOrder, s.ctrl.Mode())
}

func (s *BrowseSession) printHelp() {
	fmt.Fprintln(s.out, `Comandos:
  n / p            página siguiente / anterior
  page <n>         ir a la página n
  size <n>         cambiar registros por página
  sort <campo> [asc|desc]
  search <término> búsqueda simple
  f campo=valor    filtro por campos (repetible)
  a <término>      búsqueda rápida (mínimo de caracteres configurado)
  clear            volver al listado
  r                refrescar
  q                salir`)
}

func newBrowseCmd(cfg *schema.EntityConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: fmt.Sprintf("Explorar %s interactivamente", cfg.EntityNamePlural),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(cfg, 0, 0, "", "")
			if err != nil {
				return err
			}
			session := NewBrowseSession(cfg, ctrl, os.Stdin, os.Stdout)
			return session.Run()
		},
	}
}
