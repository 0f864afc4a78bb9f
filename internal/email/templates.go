package email

import "html/template"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<h1>Olá {{.Name}}!</h1>
<p>Recebemos seu cadastro para o DeFaiLabz MVP.</p>
<p>Seu código de acesso será enviado automaticamente no dia {{.LaunchDay}} às {{.LaunchTime}}.</p>
<p>Fique atento à sua caixa de entrada!</p>
<br>
<p>Atenciosamente,<br>Equipe DeFaiLabz</p>
`))

var accessCodeTemplate = template.Must(template.New("access_code").Parse(`
<h1>Olá {{.Name}}!</h1>
<p>O momento chegou!</p>
<p>Seu código de acesso para o DeFaiLabz MVP é:</p>
<h2 style="color: #4CAF50; font-size: 24px; padding: 10px; background: #f0f0f0; text-align: center;">{{.AccessCode}}</h2>
<p>Use este código para acessar a plataforma.</p>
<br>
<p>Atenciosamente,<br>Equipe DeFaiLabz</p>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h1>Bem-vindo, {{.Name}}!</h1>
<p>É um prazer ter você conosco no DeFaiLabz MVP.</p>
<p>Aqui você terá acesso a:</p>
<ul>
  <li>Análises técnicas avançadas</li>
  <li>Indicadores customizados</li>
  <li>Carteira virtual para simulações</li>
  <li>Suporte da nossa equipe</li>
</ul>
<p>Comece a explorar agora mesmo!</p>
<br>
<p>Atenciosamente,<br>Equipe DeFaiLabz</p>
`))
